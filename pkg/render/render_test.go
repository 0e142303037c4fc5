package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/identity"
	"github.com/unitscope/unitscope/pkg/report"
)

func renderedReport(t *testing.T, rep *report.Report) string {
	t.Helper()
	var buf bytes.Buffer
	New(&buf, true).Render(rep)
	return buf.String()
}

func sampleRenderReport() *report.Report {
	linger := true
	rep := report.NewReport()
	rep.UserInfo = &identity.Identity{
		Name: "svc", UID: 1000, GID: 1000, Home: "/home/svc",
		Groups: []string{"svc", "audio"}, Linger: &linger,
	}
	rep.Directories = []collector.DirectoryProbe{
		{Name: "User Config", Path: "/home/svc/.config/systemd/user", Exists: true, IsDirectory: true, UnitCount: 3, Accessible: true},
		{Name: "User Local", Path: "/home/svc/.local/share/systemd/user"},
		{Name: "User Runtime", Path: "/run/user/1000", Exists: true, IsDirectory: true, UnitCount: collector.UnitCountUnknown},
		{Name: "System User", Path: "/usr/lib/systemd/user", Exists: true, IsDirectory: true, UnitCount: 0, Accessible: true},
	}
	rep.Services = []collector.UnitRecord{
		{Name: "foo.service", State: "enabled", Load: "loaded", Active: "active", Sub: "running", Description: "Foo daemon"},
		{Name: "bar.service", State: "disabled", Load: "loaded", Active: "failed", Sub: "failed", Description: "Bar daemon"},
	}
	rep.Timers = []collector.TimerRecord{{Name: "orphan.timer"}}
	rep.ManagerStatus = collector.ManagerStatus{
		Entries: []collector.StatusEntry{
			{Label: "State", Value: "running"},
			{Label: "Failed", Value: "0 units"},
		},
		Reachable: true,
	}
	rep.Sessions = []collector.SessionUser{
		{UID: "1000", Name: "svc", Sessions: "2"},
		{UID: "1001", Name: "ops", Sessions: "1"},
	}
	rep.Cgroup = collector.CgroupStats{Services: 2, Slices: 1, Scopes: 1, Processes: 5}
	rep.Summary = report.BuildSummary(rep)
	return rep
}

func TestRenderSections(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())

	for _, section := range []string{
		"User Service Manager Report",
		"== User",
		"== Unit Directories",
		"== Services",
		"== Sockets",
		"== Timers",
		"== Manager Status",
		"== Logged-in Users",
		"== Control Groups",
		"== Summary",
	} {
		assert.Contains(t, out, section)
	}
}

func TestRenderDirectoryStatusWording(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())

	assert.Contains(t, out, "Present (3 units)")
	assert.Contains(t, out, "Missing")
	assert.Contains(t, out, "Access Denied")
	assert.Contains(t, out, "Present (empty)")
}

func TestRenderTimersDashForMissing(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())

	var timerLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "orphan.timer") {
			timerLine = line
			break
		}
	}
	require.NotEmpty(t, timerLine)
	assert.Equal(t, 3, strings.Count(timerLine, "-"), "missing schedule fields render as dashes")
}

func TestRenderHighlightsCurrentUser(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())

	assert.Contains(t, out, "svc (you)")
	assert.NotContains(t, out, "ops (you)")
}

func TestRenderTruncatesLongUnitTables(t *testing.T) {
	rep := sampleRenderReport()
	rep.Services = nil
	for i := 0; i < 25; i++ {
		rep.Services = append(rep.Services, collector.UnitRecord{
			Name:   fmt.Sprintf("unit-%02d.service", i),
			State:  "enabled",
			Load:   "loaded",
			Active: "active",
			Sub:    "running",
		})
	}

	out := renderedReport(t, rep)

	assert.Contains(t, out, "unit-19.service")
	assert.NotContains(t, out, "unit-20.service")
	assert.Contains(t, out, "... and 5 more")
}

func TestRenderEmptySections(t *testing.T) {
	rep := report.NewReport()
	rep.ManagerStatus = collector.ParseManagerStatus("", 1)
	rep.Summary = report.BuildSummary(rep)

	out := renderedReport(t, rep)

	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Status: Not running")
	assert.Contains(t, out, "did not answer")
	assert.Contains(t, out, "not running")
}

func TestRenderSummaryCounts(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())

	assert.Contains(t, out, "2 total, 1 active, 1 failed")
	assert.Contains(t, out, "Manager:     running")
	assert.Contains(t, out, "linger enabled")
}

func TestRenderNoColorHasNoEscapes(t *testing.T) {
	out := renderedReport(t, sampleRenderReport())
	assert.NotContains(t, out, "\x1b[")
}
