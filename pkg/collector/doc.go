// Copyright (c) 2025, Unitscope Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collector gathers per-user service-manager state by invoking the
// manager's query commands and parsing their loosely structured tabular
// output into typed records.
//
// # Parsing discipline
//
// The source data is human-oriented text, not a typed API. Each parser is a
// pure function from text to records with the same defensive shape:
//
//   - locate a header row before accepting data rows (banner lines above the
//     header are ignored)
//   - stop at the first blank line after the header (legend and summary
//     trailers follow it)
//   - enforce a minimum whitespace-separated field count before any
//     positional access; short rows are formatting noise, skipped silently
//
// # Failure semantics
//
// Individual probes degrade, never abort: a failed or timed-out query logs a
// warning and produces an empty collection or sentinel/unknown values. Only
// ValidateEnvironment returns fatal errors.
//
// # Factory
//
// The Factory interface mirrors the usual dependency-injection seam: tests
// construct collectors around a fake Runner serving fixture command outputs.
package collector
