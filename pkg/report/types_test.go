package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/header"
	"github.com/unitscope/unitscope/pkg/identity"
)

func TestReportJSONRoundTripWithNulls(t *testing.T) {
	rep := NewReport()
	rep.Init(header.KindUserReport, APIVersion, "v0.1.0")
	rep.UserInfo = &identity.Identity{
		Name:   "svc",
		UID:    1000,
		GID:    1000,
		Home:   "/home/svc",
		Groups: []string{"svc", "audio"},
		Linger: nil, // undetermined, must survive as null
	}
	rep.Timers = []collector.TimerRecord{{Name: "orphan.timer"}}
	rep.ManagerStatus = collector.ManagerStatus{
		Entries: []collector.StatusEntry{
			{Label: "State", Value: "degraded"},
			{Label: "Since", Value: "Mon 2026-08-31 08:00:01 UTC; 2h ago"},
		},
		Reachable: true,
	}
	rep.Summary = BuildSummary(rep)

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, rep.Kind, got.Kind)
	assert.Equal(t, rep.UserInfo.Name, got.UserInfo.Name)
	assert.Nil(t, got.UserInfo.Linger)
	require.Len(t, got.Timers, 1)
	assert.Nil(t, got.Timers[0].NextActivation)
	assert.Equal(t, rep.ManagerStatus.Entries, got.ManagerStatus.Entries)
	assert.True(t, got.ManagerStatus.Reachable)
	assert.Nil(t, got.Summary.User.Linger)
}

func TestReportExportKeys(t *testing.T) {
	rep := NewReport()
	rep.Init(header.KindUserReport, APIVersion, "v0.1.0")
	rep.UserInfo = &identity.Identity{Name: "svc"}
	rep.Sessions = []collector.SessionUser{{UID: "1000", Name: "svc"}}
	rep.Cgroup = collector.CgroupStats{Services: 2}

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"kind", "apiVersion", "metadata",
		"user_info", "directories", "services", "sockets",
		"timers", "manager_status", "summary",
	} {
		assert.Contains(t, doc, key)
	}

	// Terminal-only sections stay out of the export document.
	assert.NotContains(t, doc, "sessions")
	assert.NotContains(t, doc, "cgroup")
}

func TestAllDegradedReportExportsWellFormed(t *testing.T) {
	rep := NewReport()
	rep.Init(header.KindUserReport, APIVersion, "")
	rep.UserInfo = &identity.Identity{Name: "svc", Groups: []string{}}
	rep.ManagerStatus = collector.ParseManagerStatus("", 1)
	rep.Summary = BuildSummary(rep)

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	// Empty sections export as empty arrays, never null.
	assert.Equal(t, []any{}, doc["services"])
	assert.Equal(t, []any{}, doc["timers"])

	status, ok := doc["manager_status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Not running", status["Status"])

	assert.False(t, rep.Healthy())
}

func TestHealthy(t *testing.T) {
	rep := NewReport()
	assert.False(t, rep.Healthy())

	rep.ManagerStatus = collector.ManagerStatus{
		Entries:   []collector.StatusEntry{{Label: "State", Value: "running"}},
		Reachable: true,
	}
	assert.True(t, rep.Healthy())
}
