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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitscope/unitscope/pkg/identity"
	"github.com/unitscope/unitscope/pkg/runner"
)

const listUnitsFixture = `Banner noise before the table
  UNIT                  LOAD   ACTIVE SUB     DESCRIPTION
  dbus.service          loaded active running D-Bus User Message Bus
  foo.service           loaded active running Foo daemon doing things
  broken.service        loaded failed failed  A unit that failed

LOAD   = Reflects whether the unit definition was properly loaded.
3 loaded units listed.`

const listUnitFilesFixture = `UNIT FILE               STATE     PRESET
foo.service             enabled   enabled
other.service           disabled  enabled
dbus.service            static    -

3 unit files listed.`

func TestParseUnitList(t *testing.T) {
	units := ParseUnitList(listUnitsFixture)

	require.Len(t, units, 3)
	assert.Equal(t, "dbus.service", units[0].Name)
	assert.Equal(t, "loaded", units[0].Load)
	assert.Equal(t, "active", units[0].Active)
	assert.Equal(t, "running", units[0].Sub)
	assert.Equal(t, "D-Bus User Message Bus", units[0].Description)
	assert.Equal(t, StateUnknown, units[0].State)

	assert.Equal(t, "broken.service", units[2].Name)
	assert.Equal(t, "failed", units[2].Active)
}

func TestParseUnitListStopsAtBlankLine(t *testing.T) {
	// the legend lines after the blank separator must not be mistaken for
	// data rows even though they split into 5+ fields
	units := ParseUnitList(listUnitsFixture)
	for _, u := range units {
		assert.NotEqual(t, "LOAD", u.Name)
	}
}

func TestParseUnitListHeaderOnly(t *testing.T) {
	out := "UNIT LOAD ACTIVE SUB DESCRIPTION\n"
	assert.Empty(t, ParseUnitList(out))
}

func TestParseUnitListEmptyInput(t *testing.T) {
	assert.Empty(t, ParseUnitList(""))
}

func TestParseUnitListSkipsShortRows(t *testing.T) {
	out := "UNIT LOAD ACTIVE SUB DESCRIPTION\n" +
		"short.service loaded active\n" +
		"full.service loaded active running Fine\n"

	units := ParseUnitList(out)
	require.Len(t, units, 1)
	assert.Equal(t, "full.service", units[0].Name)
}

func TestIsUnitListHeaderOrderIndependent(t *testing.T) {
	assert.True(t, isUnitListHeader("SUB ACTIVE LOAD UNIT DESCRIPTION"))
	assert.True(t, isUnitListHeader("UNIT LOAD ACTIVE SUB"))
	assert.False(t, isUnitListHeader("UNIT LOAD ACTIVE"))
	assert.False(t, isUnitListHeader(""))
}

func TestParseUnitFileStates(t *testing.T) {
	states := ParseUnitFileStates(listUnitFilesFixture)

	assert.Equal(t, "enabled", states["foo.service"])
	assert.Equal(t, "disabled", states["other.service"])
	assert.Equal(t, "static", states["dbus.service"])
	// trailing summary after the blank line never becomes an entry
	assert.NotContains(t, states, "3")
}

func TestParseUnitFileStatesLastFieldWins(t *testing.T) {
	// the middle preset column is optional and must not be assumed
	out := "UNIT FILE STATE\nplain.service enabled\nwide.service disabled enabled\n"
	states := ParseUnitFileStates(out)

	assert.Equal(t, "enabled", states["plain.service"])
	assert.Equal(t, "enabled", states["wide.service"])
}

func TestMergeEnablement(t *testing.T) {
	units := []UnitRecord{
		{Name: "foo.service", State: StateUnknown, Active: "active"},
		{Name: "bare.service", State: StateUnknown},
	}
	states := map[string]string{
		"foo.service":   "enabled",
		"other.service": "disabled",
	}

	MergeEnablement(units, states)

	assert.Equal(t, "enabled", units[0].State)
	assert.Equal(t, StateUnknown, units[1].State)
	// membership is defined by the live listing
	require.Len(t, units, 2)
}

func TestMergeEnablementIdempotent(t *testing.T) {
	units := []UnitRecord{{Name: "foo.service", State: StateUnknown}}
	states := map[string]string{"foo.service": "enabled"}

	MergeEnablement(units, states)
	first := append([]UnitRecord(nil), units...)
	MergeEnablement(units, states)

	assert.Equal(t, first, units)
}

func TestMergeEnablementStaticOnlyUnitsInvisible(t *testing.T) {
	live := []UnitRecord{}
	MergeEnablement(live, map[string]string{"foo.service": "enabled"})
	assert.Empty(t, live)
}

func TestUnitCollectorEndToEnd(t *testing.T) {
	fake := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user list-units --type=service --no-pager --plain": {
			Output: "UNIT LOAD ACTIVE SUB DESCRIPTION\n" +
				"foo.service loaded active running Foo daemon\n",
			Code: 0,
		},
		"systemctl --user list-unit-files --type=service --no-pager": {
			Output: "UNIT FILE STATE\n" +
				"foo.service enabled\n" +
				"other.service disabled\n",
			Code: 0,
		},
	}}

	c := UnitCollector{Kind: KindService, Runner: fake}
	units := c.Collect(context.Background(), &identity.Identity{Name: "svc", UID: 1000})

	require.Len(t, units, 1)
	assert.Equal(t, "foo.service", units[0].Name)
	assert.Equal(t, "active", units[0].Active)
	assert.Equal(t, "enabled", units[0].State)
}

func TestUnitCollectorLiveListingFailureDegrades(t *testing.T) {
	fake := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user list-units --type=socket --no-pager --plain": {
			Output: "command timed out: systemctl --user list-units",
			Code:   runner.CodeTimeout,
		},
	}}

	c := UnitCollector{Kind: KindSocket, Runner: fake}
	units := c.Collect(context.Background(), &identity.Identity{UID: 1000})

	assert.NotNil(t, units)
	assert.Empty(t, units)
}

func TestUnitCollectorFileListingFailureKeepsLiveSet(t *testing.T) {
	fake := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user list-units --type=service --no-pager --plain": {
			Output: "UNIT LOAD ACTIVE SUB DESCRIPTION\n" +
				"foo.service loaded active running Foo daemon\n",
			Code: 0,
		},
	}}

	c := UnitCollector{Kind: KindService, Runner: fake}
	units := c.Collect(context.Background(), &identity.Identity{UID: 1000})

	require.Len(t, units, 1)
	assert.Equal(t, StateUnknown, units[0].State)
}
