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

// Package sample writes a minimal service unit into the user's config
// directory so there is something harmless to practice the manager
// commands on.
package sample

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/unit"

	"github.com/unitscope/unitscope/pkg/errors"
	"github.com/unitscope/unitscope/pkg/identity"
	"github.com/unitscope/unitscope/pkg/serializer"
)

// FileName is the name of the written unit file.
const FileName = "sample.service"

// Options returns the unit definition of the sample service: a do-nothing
// long-running process that is safe to start, stop, and enable.
func Options() []*unit.UnitOption {
	return []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", "Sample Service"),
		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "ExecStart", "/usr/bin/sleep infinity"),
		unit.NewUnitOption("Install", "WantedBy", "default.target"),
	}
}

// Write serializes the sample unit into the user's unit config directory,
// creating the directory if needed, and returns the written path.
func Write(id *identity.Identity) (string, error) {
	dir := filepath.Join(id.Home, ".config", "systemd", "user")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create unit directory", err)
	}

	data, err := io.ReadAll(unit.Serialize(Options()))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to serialize sample unit", err)
	}

	path := filepath.Join(dir, FileName)
	if err := serializer.WriteToFile(path, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write sample unit", err)
	}
	return path, nil
}

// PrintHints writes the follow-up commands for working with the sample
// unit and the user manager in general.
func PrintHints(w io.Writer, id *identity.Identity) {
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  systemctl --user daemon-reload")
	fmt.Fprintf(w, "  systemctl --user enable --now %s\n", FileName)
	fmt.Fprintf(w, "  systemctl --user status %s\n", FileName)
	fmt.Fprintf(w, "  systemctl --user stop %s\n", FileName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Useful commands:")
	fmt.Fprintln(w, "  systemctl --user list-units")
	fmt.Fprintln(w, "  journalctl --user -u "+FileName)
	fmt.Fprintf(w, "  loginctl enable-linger %s\n", id.Name)
}
