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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/unitscope/unitscope/pkg/identity"
)

// UnitCountUnknown marks a unit-file count that could not be determined.
// Callers must treat a negative count as unknown, never as zero.
const UnitCountUnknown = -1

// unitFileSuffixes are the recognized unit-definition file extensions.
var unitFileSuffixes = []string{".service", ".socket", ".timer", ".target", ".mount", ".automount"}

// DirectoryProbe is the inspection result for one well-known unit-search
// path. UnitCount is only meaningful when Exists, IsDirectory, and
// Accessible all hold.
type DirectoryProbe struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	Exists      bool   `json:"exists" yaml:"exists"`
	IsDirectory bool   `json:"is_directory" yaml:"is_directory"`
	UnitCount   int    `json:"unit_count" yaml:"unit_count"`
	Accessible  bool   `json:"accessible" yaml:"accessible"`
}

// DirectoryCollector probes the fixed set of user-unit directories.
type DirectoryCollector struct{}

// Collect probes the five well-known unit directories for the resolved user,
// in fixed order. Enumeration failures degrade individual probes without
// aborting the sweep.
func (c *DirectoryCollector) Collect(_ context.Context, id *identity.Identity) []DirectoryProbe {
	dirs := []struct {
		name string
		path string
	}{
		{"User Config", filepath.Join(id.Home, ".config", "systemd", "user")},
		{"User Runtime", fmt.Sprintf("/run/user/%d", id.UID)},
		{"User Local", filepath.Join(id.Home, ".local", "share", "systemd", "user")},
		{"System User", "/usr/lib/systemd/user"},
		{"System Local", "/usr/local/lib/systemd/user"},
	}

	probes := make([]DirectoryProbe, 0, len(dirs))
	for _, d := range dirs {
		probes = append(probes, probeDirectory(d.name, d.path))
	}
	return probes
}

func probeDirectory(name, path string) DirectoryProbe {
	probe := DirectoryProbe{
		Name:       name,
		Path:       path,
		Accessible: true,
	}

	info, err := os.Stat(path)
	if err != nil {
		return probe
	}
	probe.Exists = true
	probe.IsDirectory = info.IsDir()
	if !probe.IsDirectory {
		return probe
	}

	count, err := countUnitFiles(path)
	if err != nil {
		if !errors.Is(err, fs.ErrPermission) {
			slog.Warn("could not scan unit directory", "path", path, "error", err)
		}
		probe.Accessible = false
		probe.UnitCount = UnitCountUnknown
		return probe
	}

	probe.UnitCount = count
	return probe
}

func countUnitFiles(path string) (int, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if HasUnitSuffix(entry.Name()) {
			count++
		}
	}
	return count, nil
}

// HasUnitSuffix reports whether the file name carries a recognized
// unit-definition extension.
func HasUnitSuffix(name string) bool {
	for _, suffix := range unitFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
