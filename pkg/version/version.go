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

// Package version holds build metadata and parsing helpers for the
// service-manager version banner.
package version

import (
	"errors"
	"strconv"
	"strings"
)

const versionDefault = "dev"

// Overridden during build with ldflags.
var (
	Version = versionDefault
	Commit  = "unknown"
	Date    = "unknown"
)

// Error types for manager version parsing failures.
var (
	ErrEmptyBanner  = errors.New("version banner is empty")
	ErrBannerFormat = errors.New("unrecognized version banner format")
	ErrNonNumeric   = errors.New("version component is not numeric")
)

// ParseManagerVersion extracts the numeric systemd version from the first
// line of `systemctl --version` output, e.g.
//
//	systemd 255 (255.4-1ubuntu8.4)
//	+PAM +AUDIT ...
//
// returns 255. Only the first line is inspected; feature flags are ignored.
func ParseManagerVersion(banner string) (int, error) {
	banner = strings.TrimSpace(banner)
	if banner == "" {
		return 0, ErrEmptyBanner
	}

	line := banner
	if idx := strings.IndexByte(banner, '\n'); idx >= 0 {
		line = banner[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, ErrBannerFormat
	}

	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, ErrNonNumeric
	}
	return v, nil
}
