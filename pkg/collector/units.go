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

package collector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/unitscope/unitscope/pkg/identity"
)

// UnitKind selects which unit type a listing query is scoped to.
type UnitKind string

const (
	KindService UnitKind = "service"
	KindSocket  UnitKind = "socket"
	KindTimer   UnitKind = "timer"
)

// StateUnknown is the enablement state of a live unit with no matching
// unit-file entry.
const StateUnknown = "unknown"

// UnitRecord is one unit known to the user manager: runtime states from the
// live listing, enablement state from the unit-file listing.
type UnitRecord struct {
	Name        string `json:"name" yaml:"name"`
	State       string `json:"state" yaml:"state"`
	Load        string `json:"load" yaml:"load"`
	Active      string `json:"active" yaml:"active"`
	Sub         string `json:"sub" yaml:"sub"`
	Description string `json:"description" yaml:"description"`
}

// UnitCollector lists units of one kind and reconciles the live listing
// with the unit-file listing.
type UnitCollector struct {
	Kind   UnitKind
	Runner Runner
}

// Collect gathers the merged unit records for the collector's kind. A failed
// live-listing query degrades to an empty set with a warning; a failed
// unit-file query leaves enablement states at "unknown".
func (c *UnitCollector) Collect(ctx context.Context, id *identity.Identity) []UnitRecord {
	res := c.Runner.RunAsUser(ctx, id.UID, "systemctl",
		"--user", "list-units", "--type="+string(c.Kind), "--no-pager", "--plain")
	if !res.OK() {
		slog.Warn("failed to list units", "kind", c.Kind, "code", res.Code)
		return []UnitRecord{}
	}

	units := ParseUnitList(res.Output)

	filesRes := c.Runner.RunAsUser(ctx, id.UID, "systemctl",
		"--user", "list-unit-files", "--type="+string(c.Kind), "--no-pager")
	if !filesRes.OK() {
		slog.Warn("failed to list unit files", "kind", c.Kind, "code", filesRes.Code)
		return units
	}

	MergeEnablement(units, ParseUnitFileStates(filesRes.Output))
	return units
}

// ParseUnitList parses `systemctl list-units` tabular output. Lines before
// the header row are banner noise; data rows follow until the first blank
// line. A row needs at least 5 whitespace-separated fields (name, load,
// active, sub, description...); shorter rows are formatting noise, skipped
// without error.
func ParseUnitList(output string) []UnitRecord {
	units := make([]UnitRecord, 0)
	headerFound := false

	for _, line := range strings.Split(output, "\n") {
		if !headerFound {
			if isUnitListHeader(line) {
				headerFound = true
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) < 5 {
			continue
		}

		units = append(units, UnitRecord{
			Name:        parts[0],
			State:       StateUnknown,
			Load:        parts[1],
			Active:      parts[2],
			Sub:         parts[3],
			Description: strings.Join(parts[4:], " "),
		})
	}

	return units
}

// isUnitListHeader reports whether the line is the listing header: all of
// UNIT, LOAD, ACTIVE, and SUB present as columns, in any order.
func isUnitListHeader(line string) bool {
	fields := strings.Fields(line)
	var unit, load, active, sub bool
	for _, f := range fields {
		switch f {
		case "UNIT":
			unit = true
		case "LOAD":
			load = true
		case "ACTIVE":
			active = true
		case "SUB":
			sub = true
		}
	}
	return unit && load && active && sub
}

// ParseUnitFileStates parses `systemctl list-unit-files` output into a
// unit-name to enablement-state map. Rows follow the header until the first
// blank line; a valid row has at least 2 fields where the first is the unit
// name and the last is the state. The optional middle PRESET column is never
// assumed positionally.
//
// The last-field assumption is a format-version risk: a future trailing
// column would silently shift the state value.
func ParseUnitFileStates(output string) map[string]string {
	states := make(map[string]string)
	headerFound := false

	for _, line := range strings.Split(output, "\n") {
		if !headerFound {
			if isUnitFileHeader(line) {
				headerFound = true
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		states[parts[0]] = parts[len(parts)-1]
	}

	return states
}

func isUnitFileHeader(line string) bool {
	fields := strings.Fields(line)
	var unit, state bool
	for _, f := range fields {
		switch f {
		case "UNIT":
			unit = true
		case "STATE":
			state = true
		}
	}
	return unit && state
}

// MergeEnablement overwrites each live unit's default enablement state with
// the discovered unit-file state, keyed by unit name. Membership is defined
// by the live listing: units present only in the file listing are never
// added.
func MergeEnablement(units []UnitRecord, states map[string]string) {
	for i := range units {
		if state, ok := states[units[i].Name]; ok {
			units[i].State = state
		}
	}
}
