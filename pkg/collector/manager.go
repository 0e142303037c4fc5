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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unitscope/unitscope/pkg/identity"
)

const (
	statusLabel      = "Status"
	statusNotRunning = "Not running"
	stateLabel       = "State"
)

// StatusEntry is one label/value pair from the manager status block.
type StatusEntry struct {
	Label string
	Value string
}

// ManagerStatus is the parsed key:value snapshot of the user manager's own
// health. Entry order follows the source output. Reachable is false when the
// status query itself failed, in which case Entries holds a single synthetic
// entry.
type ManagerStatus struct {
	Entries   []StatusEntry
	Reachable bool
}

// ManagerCollector queries the user manager's status block.
type ManagerCollector struct {
	Runner Runner
}

// Collect runs the status query and parses its output. A nonzero exit is
// not an error: it produces the synthetic "not running" status.
func (c *ManagerCollector) Collect(ctx context.Context, id *identity.Identity) ManagerStatus {
	res := c.Runner.RunAsUser(ctx, id.UID, "systemctl", "--user", "--no-pager", "status")
	return ParseManagerStatus(res.Output, res.Code)
}

// ParseManagerStatus parses the free-text status block into ordered
// label/value entries, splitting each line on its first colon only (values
// may themselves contain colons) and trimming both sides. A nonzero exit
// code yields the single synthetic unreachable entry.
func ParseManagerStatus(output string, code int) ManagerStatus {
	if code != 0 {
		return ManagerStatus{
			Entries:   []StatusEntry{{Label: statusLabel, Value: statusNotRunning}},
			Reachable: false,
		}
	}

	status := ManagerStatus{Entries: make([]StatusEntry, 0), Reachable: true}
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		status.Entries = append(status.Entries, StatusEntry{
			Label: strings.TrimSpace(line[:idx]),
			Value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return status
}

// Get returns the value for a label and whether it was present.
func (s ManagerStatus) Get(label string) (string, bool) {
	for _, e := range s.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Running reports whether the manager is considered healthy: a State value
// containing "running", case-insensitively.
func (s ManagerStatus) Running() bool {
	state, ok := s.Get(stateLabel)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(state), "running")
}

// IsProblem reports whether an entry is a failure indicator: a label
// containing "failed" (case-insensitive) paired with a non-"0" value.
func (e StatusEntry) IsProblem() bool {
	return strings.Contains(strings.ToLower(e.Label), "failed") && e.Value != "0"
}

// Problems returns the labels of all failure-indicator entries.
func (s ManagerStatus) Problems() []string {
	problems := make([]string, 0)
	for _, e := range s.Entries {
		if e.IsProblem() {
			problems = append(problems, e.Label)
		}
	}
	return problems
}

// MarshalJSON serializes the status as a JSON object preserving entry order.
func (s ManagerStatus) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores entries in document order. Reachability is
// recomputed: a lone synthetic unreachable entry marks a failed query.
func (s *ManagerStatus) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manager status: expected JSON object, got %v", tok)
	}

	entries := make([]StatusEntry, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("manager status: non-string key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		entries = append(entries, StatusEntry{Label: key, Value: value})
	}

	s.Entries = entries
	s.Reachable = !(len(entries) == 1 &&
		entries[0].Label == statusLabel && entries[0].Value == statusNotRunning)
	return nil
}

// MarshalYAML serializes the status as an ordered YAML mapping.
func (s ManagerStatus) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Label},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Value},
		)
	}
	return node, nil
}
