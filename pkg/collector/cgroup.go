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

// CgroupStats are line-count tallies over the user's control-group tree.
type CgroupStats struct {
	Services  int `json:"services" yaml:"services"`
	Slices    int `json:"slices" yaml:"slices"`
	Scopes    int `json:"scopes" yaml:"scopes"`
	Processes int `json:"processes" yaml:"processes"`
}

// CgroupCollector tallies the user's control-group tree.
type CgroupCollector struct {
	Runner Runner
}

// Collect dumps and tallies the user cgroup tree. A failed query degrades
// to zero tallies with a warning.
func (c *CgroupCollector) Collect(ctx context.Context, id *identity.Identity) CgroupStats {
	res := c.Runner.RunAsUser(ctx, id.UID, "systemd-cgls", "--user", "--no-pager")
	if !res.OK() {
		slog.Warn("failed to read cgroup tree", "code", res.Code)
		return CgroupStats{}
	}
	return TallyCgroupTree(res.Output)
}

// TallyCgroupTree counts lines naming service, slice, and scope nodes, and
// branch-glyph lines as a proxy for processes. This is a heuristic line
// count over the rendered tree, not a structural parse: glyph lines include
// nested slice and scope headers, so the process tally over-counts. That
// approximation is intentional and preserved.
func TallyCgroupTree(output string) CgroupStats {
	var stats CgroupStats
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.Contains(line, ".service"):
			stats.Services++
		case strings.Contains(line, ".slice"):
			stats.Slices++
		case strings.Contains(line, ".scope"):
			stats.Scopes++
		}
		if strings.Contains(line, "├─") || strings.Contains(line, "└─") {
			stats.Processes++
		}
	}
	return stats
}
