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

// SessionUser is one logged-in user row from the session manager.
type SessionUser struct {
	UID      string `json:"uid" yaml:"uid"`
	Name     string `json:"user" yaml:"user"`
	Sessions string `json:"sessions" yaml:"sessions"`
}

// SessionCollector inspects login-session state: the resolved user's linger
// setting and other users' sessions.
type SessionCollector struct {
	Runner Runner
}

// LingerStatus queries whether the resolved user's session persists after
// logout. The query is scoped to the resolved user name, not the invoking
// process, so an elevated run still reports the right session's setting.
// nil means the setting could not be determined, distinct from an explicit
// false.
func (c *SessionCollector) LingerStatus(ctx context.Context, id *identity.Identity) *bool {
	res := c.Runner.Run(ctx, "loginctl", "show-user", id.Name, "-p", "Linger")
	linger := ParseLinger(res.Output, res.Code)
	if linger == nil {
		slog.Warn("could not determine linger status", "user", id.Name, "code", res.Code)
	}
	return linger
}

// ParseLinger extracts the Linger property value. A failed query or missing
// property yields nil (unknown).
func ParseLinger(output string, code int) *bool {
	if code != 0 {
		return nil
	}
	for _, line := range strings.Split(output, "\n") {
		if value, ok := strings.CutPrefix(line, "Linger="); ok {
			enabled := strings.TrimSpace(value) == "yes"
			return &enabled
		}
	}
	return nil
}

// ListSystemUsers enumerates logged-in users with their session counts.
// A failed query degrades to an empty list with a warning.
func (c *SessionCollector) ListSystemUsers(ctx context.Context) []SessionUser {
	res := c.Runner.Run(ctx, "loginctl", "list-users", "--no-pager")
	if !res.OK() {
		slog.Warn("failed to list system users", "code", res.Code)
		return []SessionUser{}
	}
	return ParseSessionUsers(res.Output)
}

// ParseSessionUsers parses `loginctl list-users` output with the usual
// header-then-rows discipline; a valid row needs at least 3 fields.
func ParseSessionUsers(output string) []SessionUser {
	users := make([]SessionUser, 0)
	headerFound := false

	for _, line := range strings.Split(output, "\n") {
		if !headerFound {
			if isSessionHeader(line) {
				headerFound = true
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		users = append(users, SessionUser{
			UID:      parts[0],
			Name:     parts[1],
			Sessions: parts[2],
		})
	}

	return users
}

func isSessionHeader(line string) bool {
	fields := strings.Fields(line)
	var uid, name bool
	for _, f := range fields {
		switch f {
		case "UID":
			uid = true
		case "USER":
			name = true
		}
	}
	return uid && name
}
