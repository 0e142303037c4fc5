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

// TimerRecord is one timer unit's schedule. Any field past the name may be
// nil when the source row carried fewer columns than expected.
type TimerRecord struct {
	Name           string  `json:"name" yaml:"name"`
	NextActivation *string `json:"next_activation" yaml:"next_activation"`
	TimeLeft       *string `json:"time_left" yaml:"time_left"`
	LastActivation *string `json:"last_activation" yaml:"last_activation"`
}

// TimerCollector lists timer units with their schedules.
type TimerCollector struct {
	Runner Runner
}

// Collect gathers timer schedules. A failed query degrades to an empty set
// with a warning.
func (c *TimerCollector) Collect(ctx context.Context, id *identity.Identity) []TimerRecord {
	res := c.Runner.RunAsUser(ctx, id.UID, "systemctl",
		"--user", "list-timers", "--all", "--no-pager")
	if !res.OK() {
		slog.Warn("failed to list timers", "code", res.Code)
		return []TimerRecord{}
	}
	return ParseTimers(res.Output)
}

// ParseTimers parses `systemctl list-timers` output with the usual
// header-then-rows discipline, stopping at the first blank line after the
// header.
func ParseTimers(output string) []TimerRecord {
	timers := make([]TimerRecord, 0)
	headerFound := false

	for _, line := range strings.Split(output, "\n") {
		if !headerFound {
			if isTimerHeader(line) {
				headerFound = true
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}
		if strings.HasPrefix(line, "timers listed") {
			continue
		}

		if timer, ok := ParseTimerLine(line); ok {
			timers = append(timers, timer)
		}
	}

	return timers
}

// isTimerHeader reports whether the line is the timer listing header: NEXT,
// LEFT, and LAST present as columns.
func isTimerHeader(line string) bool {
	fields := strings.Fields(line)
	var next, left, last bool
	for _, f := range fields {
		switch f {
		case "NEXT":
			next = true
		case "LEFT":
			left = true
		case "LAST":
			last = true
		}
	}
	return next && left && last
}

// ParseTimerLine splits one timer data row. A valid row needs at least 4
// fields: name, the two-column next-activation group (date + time), and the
// time-left column. The two-column last-activation group is only read when
// the row carries at least 6 fields; missing trailing groups stay nil.
// Whitespace-split date/time text makes column counts ambiguous, so every
// positional access is preceded by a length check.
func ParseTimerLine(line string) (TimerRecord, bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return TimerRecord{}, false
	}

	timer := TimerRecord{Name: parts[0]}

	next := parts[1]
	if len(parts) >= 3 {
		next = parts[1] + " " + parts[2]
	}
	timer.NextActivation = &next

	if len(parts) >= 4 {
		left := parts[3]
		timer.TimeLeft = &left
	}

	if len(parts) >= 6 {
		last := parts[4] + " " + parts[5]
		timer.LastActivation = &last
	}

	return timer, true
}
