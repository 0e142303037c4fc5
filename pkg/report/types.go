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

package report

import (
	"context"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/header"
	"github.com/unitscope/unitscope/pkg/identity"
)

// APIVersion is the schema version of exported reports.
const APIVersion = "v1"

// Reporter defines the interface for capturing a user-manager report.
type Reporter interface {
	Capture(ctx context.Context) (*Report, error)
}

// NewReport creates a Report with initialized collections so that an
// all-degraded capture still exports well-formed (empty, not absent)
// sections.
func NewReport() *Report {
	return &Report{
		Directories: make([]collector.DirectoryProbe, 0),
		Services:    make([]collector.UnitRecord, 0),
		Sockets:     make([]collector.UnitRecord, 0),
		Timers:      make([]collector.TimerRecord, 0),
		Sessions:    make([]collector.SessionUser, 0),
	}
}

// Report is the complete inspection result for one user's service manager.
// Sessions and Cgroup feed the terminal rendering only and are excluded
// from the export document.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// UserInfo is the resolved identity the inspection ran for.
	UserInfo *identity.Identity `json:"user_info" yaml:"user_info"`

	// Directories are the probes of the well-known unit-search paths.
	Directories []collector.DirectoryProbe `json:"directories" yaml:"directories"`

	// Services are the merged live and static service listings.
	Services []collector.UnitRecord `json:"services" yaml:"services"`

	// Sockets are the merged live and static socket listings.
	Sockets []collector.UnitRecord `json:"sockets" yaml:"sockets"`

	// Timers are the scheduled timer records.
	Timers []collector.TimerRecord `json:"timers" yaml:"timers"`

	// ManagerStatus is the parsed manager health snapshot.
	ManagerStatus collector.ManagerStatus `json:"manager_status" yaml:"manager_status"`

	// Summary is derived from the sections above after collection.
	Summary Summary `json:"summary" yaml:"summary"`

	// Sessions lists other logged-in users and their session counts.
	Sessions []collector.SessionUser `json:"-" yaml:"-"`

	// Cgroup tallies the user's control-group tree.
	Cgroup collector.CgroupStats `json:"-" yaml:"-"`
}

// Healthy reports whether the user manager was classified running.
// The process exit status mirrors this.
func (r *Report) Healthy() bool {
	return r.ManagerStatus.Running()
}
