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

// Package header provides the common header type for exported documents.
//
// The Header identifies what a document is (Kind), which schema it follows
// (APIVersion), and when and by what it was produced (Metadata). Every
// exported report embeds one so that a file on disk is self-describing.
//
// # Usage
//
// Initialize a header for a user report:
//
//	var h header.Header
//	h.Init(header.KindUserReport, "v1", version.Version)
//
// Init stamps Metadata with a unique id, an RFC3339 UTC timestamp, and the
// tool version. Consumers should check APIVersion before parsing the rest
// of the document:
//
//	if h.APIVersion != "v1" {
//	    return fmt.Errorf("unsupported API version: %s", h.APIVersion)
//	}
package header
