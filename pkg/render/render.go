// Package render draws the captured report on the terminal: section tables
// for directories, units, timers, and sessions, colored status values, and
// the summary footer. Rendering consumes the report model and never
// mutates it.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/report"
)

// displayLimit caps how many unit rows a section table shows. The report
// itself always holds the full set; only the display truncates.
const displayLimit = 20

// Renderer writes the human-readable report. NoColor suppresses all
// styling, for pipes and dumb terminals.
type Renderer struct {
	Out     io.Writer
	NoColor bool
}

// New creates a Renderer writing to out.
func New(out io.Writer, noColor bool) *Renderer {
	return &Renderer{Out: out, NoColor: noColor}
}

// Render draws the complete terminal report.
func (r *Renderer) Render(rep *report.Report) {
	fmt.Fprintln(r.Out, r.paint(titleStyle, " User Service Manager Report "))
	fmt.Fprintln(r.Out)

	r.renderUser(rep)
	r.renderDirectories(rep.Directories)
	r.renderUnits("Services", rep.Services)
	r.renderUnits("Sockets", rep.Sockets)
	r.renderTimers(rep.Timers)
	r.renderManager(rep.ManagerStatus)
	r.renderSessions(rep)
	r.renderCgroup(rep.Cgroup)
	r.renderSummary(rep.Summary)
}

func (r *Renderer) paint(st lipgloss.Style, s string) string {
	if r.NoColor {
		return s
	}
	return st.Render(s)
}

func (r *Renderer) section(name string) {
	fmt.Fprintln(r.Out, r.paint(sectionStyle, "== "+name))
}

func (r *Renderer) renderUser(rep *report.Report) {
	r.section("User")
	id := rep.UserInfo
	if id == nil {
		fmt.Fprintln(r.Out, "  (unresolved)")
		fmt.Fprintln(r.Out)
		return
	}

	fmt.Fprintf(r.Out, "  Name:   %s\n", r.paint(highlightStyle, id.Name))
	fmt.Fprintf(r.Out, "  UID:    %d\n", id.UID)
	fmt.Fprintf(r.Out, "  GID:    %d\n", id.GID)
	fmt.Fprintf(r.Out, "  Home:   %s\n", id.Home)
	fmt.Fprintf(r.Out, "  Groups: %s\n", strings.Join(id.Groups, ", "))
	fmt.Fprintf(r.Out, "  Linger: %s\n", r.lingerText(id.Linger))
	fmt.Fprintln(r.Out)
}

func (r *Renderer) lingerText(linger *bool) string {
	switch {
	case linger == nil:
		return r.paint(dimStyle, "unknown")
	case *linger:
		return r.paint(goodStyle, "enabled")
	default:
		return "disabled"
	}
}

func (r *Renderer) renderDirectories(probes []collector.DirectoryProbe) {
	r.section("Unit Directories")

	t := newTable("NAME", "PATH", "STATUS")
	for _, p := range probes {
		status, style := directoryStatus(p)
		t.add(style, p.Name, p.Path, status)
	}
	r.writeTable(t)
	fmt.Fprintln(r.Out)
}

// directoryStatus maps a probe to its display wording and row style.
func directoryStatus(p collector.DirectoryProbe) (string, *lipgloss.Style) {
	switch {
	case !p.Exists:
		return "Missing", &dimStyle
	case !p.IsDirectory:
		return "Not a directory", &warnStyle
	case !p.Accessible:
		return "Access Denied", &badStyle
	case p.UnitCount > 0:
		return fmt.Sprintf("Present (%d units)", p.UnitCount), &goodStyle
	default:
		return "Present (empty)", nil
	}
}

func (r *Renderer) renderUnits(name string, units []collector.UnitRecord) {
	r.section(name)

	if len(units) == 0 {
		fmt.Fprintln(r.Out, "  (none)")
		fmt.Fprintln(r.Out)
		return
	}

	t := newTable("UNIT", "LOAD", "ACTIVE", "SUB", "ENABLEMENT", "DESCRIPTION")
	shown := units
	if len(shown) > displayLimit {
		shown = shown[:displayLimit]
	}
	for _, u := range shown {
		t.add(activeStyle(u.Active), u.Name, u.Load, u.Active, u.Sub, u.State, u.Description)
	}
	r.writeTable(t)

	if hidden := len(units) - displayLimit; hidden > 0 {
		fmt.Fprintln(r.Out, r.paint(dimStyle, fmt.Sprintf("  ... and %d more", hidden)))
	}
	fmt.Fprintln(r.Out)
}

// activeStyle picks the row style for a unit's activation state.
func activeStyle(active string) *lipgloss.Style {
	switch active {
	case "active":
		return &goodStyle
	case "failed":
		return &badStyle
	default:
		return &dimStyle
	}
}

func (r *Renderer) renderTimers(timers []collector.TimerRecord) {
	r.section("Timers")

	if len(timers) == 0 {
		fmt.Fprintln(r.Out, "  (none)")
		fmt.Fprintln(r.Out)
		return
	}

	t := newTable("UNIT", "NEXT", "LEFT", "LAST")
	shown := timers
	if len(shown) > displayLimit {
		shown = shown[:displayLimit]
	}
	for _, tm := range shown {
		t.add(nil, tm.Name, orDash(tm.NextActivation), orDash(tm.TimeLeft), orDash(tm.LastActivation))
	}
	r.writeTable(t)

	if hidden := len(timers) - displayLimit; hidden > 0 {
		fmt.Fprintln(r.Out, r.paint(dimStyle, fmt.Sprintf("  ... and %d more", hidden)))
	}
	fmt.Fprintln(r.Out)
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (r *Renderer) renderManager(status collector.ManagerStatus) {
	r.section("Manager Status")

	for _, e := range status.Entries {
		value := e.Value
		switch {
		case e.IsProblem():
			value = r.paint(badStyle, value)
		case e.Label == "State":
			if status.Running() {
				value = r.paint(goodStyle, value)
			} else {
				value = r.paint(warnStyle, value)
			}
		}
		fmt.Fprintf(r.Out, "  %s: %s\n", e.Label, value)
	}
	if !status.Reachable {
		fmt.Fprintln(r.Out, r.paint(badStyle, "  The user manager did not answer the status query."))
	}
	fmt.Fprintln(r.Out)
}

func (r *Renderer) renderSessions(rep *report.Report) {
	r.section("Logged-in Users")

	if len(rep.Sessions) == 0 {
		fmt.Fprintln(r.Out, "  (none)")
		fmt.Fprintln(r.Out)
		return
	}

	currentUID := ""
	if rep.UserInfo != nil {
		currentUID = strconv.Itoa(rep.UserInfo.UID)
	}

	t := newTable("UID", "USER", "SESSIONS")
	for _, s := range rep.Sessions {
		var style *lipgloss.Style
		name := s.Name
		if s.UID == currentUID {
			style = &highlightStyle
			name += " (you)"
		}
		t.add(style, s.UID, name, s.Sessions)
	}
	r.writeTable(t)
	fmt.Fprintln(r.Out)
}

func (r *Renderer) renderCgroup(stats collector.CgroupStats) {
	r.section("Control Groups")
	fmt.Fprintf(r.Out, "  Services: %d  Slices: %d  Scopes: %d  Processes: %d\n\n",
		stats.Services, stats.Slices, stats.Scopes, stats.Processes)
}

func (r *Renderer) renderSummary(s report.Summary) {
	r.section("Summary")
	fmt.Fprintf(r.Out, "  User:        %s (uid %d, linger %s)\n",
		s.User.Name, s.User.UID, plainLinger(s.User.Linger))
	fmt.Fprintf(r.Out, "  Directories: config present=%t, %d unit files\n",
		s.Directories.ConfigExists, s.Directories.TotalUnits)
	fmt.Fprintf(r.Out, "  Services:    %d total, %d active, %d failed\n",
		s.Services.Total, s.Services.Active, s.Services.Failed)
	fmt.Fprintf(r.Out, "  Sockets:     %d total, %d active\n",
		s.Sockets.Total, s.Sockets.Active)
	fmt.Fprintf(r.Out, "  Timers:      %d total\n", s.Timers.Total)

	verdict := r.paint(badStyle, "not running")
	if s.Manager.Running {
		verdict = r.paint(goodStyle, "running")
	}
	fmt.Fprintf(r.Out, "  Manager:     %s\n", verdict)
}

func plainLinger(linger *bool) string {
	if linger == nil {
		return "unknown"
	}
	if *linger {
		return "enabled"
	}
	return "disabled"
}

// table accumulates rows for aligned output. Styles apply per whole row,
// after alignment, so escape codes never skew column widths.
type table struct {
	header []string
	rows   [][]string
	styles []*lipgloss.Style
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(style *lipgloss.Style, cells ...string) {
	t.rows = append(t.rows, cells)
	t.styles = append(t.styles, style)
}

func (r *Renderer) writeTable(t *table) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  "+strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, "  "+strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintln(r.Out, r.paint(dimStyle, line))
			continue
		}
		if style := t.styles[i-1]; style != nil {
			line = r.paint(*style, line)
		}
		fmt.Fprintln(r.Out, line)
	}
}
