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

// Package identity resolves the invoking user against the system identity
// databases. Name, uid, gid, and home are required; group membership is
// best-effort.
package identity

import (
	"log/slog"
	"os/user"
	"strconv"

	"github.com/unitscope/unitscope/pkg/errors"
)

// Identity describes the resolved current user. Name, UID, GID, and Home are
// immutable once resolved. Linger stays nil until the session inspector
// fills it in; nil means the setting was never determined.
type Identity struct {
	Name   string   `json:"name" yaml:"name"`
	UID    int      `json:"uid" yaml:"uid"`
	GID    int      `json:"gid" yaml:"gid"`
	Home   string   `json:"home" yaml:"home"`
	Groups []string `json:"groups" yaml:"groups"`
	Linger *bool    `json:"linger" yaml:"linger"`
}

// Resolve maps the current process's user to a password-database entry.
// Failure to resolve the user is fatal (ErrCodeIdentity); failure to
// enumerate groups is not, and yields an empty group list with a warning.
func Resolve() (*Identity, error) {
	return resolve(user.Current, groupNames)
}

func resolve(current func() (*user.User, error), groups func(*user.User) ([]string, error)) (*Identity, error) {
	u, err := current()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIdentity, "failed to resolve current user", err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIdentity, "non-numeric uid", err,
			map[string]any{"uid": u.Uid})
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIdentity, "non-numeric gid", err,
			map[string]any{"gid": u.Gid})
	}

	names, err := groups(u)
	if err != nil {
		slog.Warn("could not get group memberships", "user", u.Username, "error", err)
		names = []string{}
	}

	return &Identity{
		Name:   u.Username,
		UID:    uid,
		GID:    gid,
		Home:   u.HomeDir,
		Groups: names,
	}, nil
}

// groupNames enumerates the user's group memberships by name. Groups whose
// ids cannot be mapped back to names are skipped.
func groupNames(u *user.User) ([]string, error) {
	ids, err := u.GroupIds()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		g, err := user.LookupGroupId(id)
		if err != nil {
			slog.Debug("skipping unresolvable group", "gid", id, "error", err)
			continue
		}
		names = append(names, g.Name)
	}
	return names, nil
}
