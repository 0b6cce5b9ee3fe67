package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
)

const (
	barWidth    = 20
	nameWidth   = 24
	noDataLabel = "--"
)

// View renders the status line and, when open, the menu
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.menuOpen {
		b.WriteString(menuStyle.Render(m.menu()))
		b.WriteString("\n")
	}
	return b.String()
}

// StatusLine renders the title followed by usage, or the no-data marker
func StatusLine(title string, mem *system.MemoryBreakdown) string {
	if mem == nil {
		return titleStyle.Render(title) + " " + errorStyle.Render(noDataLabel)
	}
	return fmt.Sprintf("%s %s %s",
		titleStyle.Render(title),
		FormatPercent(mem.UsagePercent),
		RenderBar(mem.UsagePercent, barWidth),
	)
}

func (m Model) statusLine() string {
	if m.snapshot == nil {
		return StatusLine(m.title, nil)
	}
	return StatusLine(m.title, m.snapshot.Memory)
}

func (m Model) menu() string {
	var sections []string

	if m.snapshot != nil && m.snapshot.Memory != nil {
		sections = append(sections, BreakdownRows(m.snapshot.Memory))
	} else {
		sections = append(sections, errorStyle.Render("memory statistics unavailable"))
	}

	sections = append(sections, headerStyle.Render("Top processes"))
	if len(m.processes) == 0 {
		sections = append(sections, labelStyle.Render("none"))
	} else {
		sections = append(sections, ProcessRows(m.processes))
	}

	var help []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	sections = append(sections, helpStyle.Render(strings.Join(help, " • ")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// BreakdownRows renders one row per memory component
func BreakdownRows(mem *system.MemoryBreakdown) string {
	rows := []struct {
		label string
		bytes uint64
	}{
		{"Used", mem.UsedBytes},
		{"Active", mem.ActiveBytes},
		{"Wired", mem.WiredBytes},
		{"Inactive", mem.InactiveBytes},
		{"Compressed", mem.CompressedBytes},
		{"Free", mem.FreeBytes},
		{"Total", mem.TotalBytes},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r.label)+valueStyle.Render(FormatBytes(r.bytes)))
	}
	return strings.Join(lines, "\n")
}

// ProcessRows renders the ranking, one process per line
func ProcessRows(procs []process.ProcessDetails) string {
	lines := make([]string, 0, len(procs))
	for _, p := range procs {
		lines = append(lines, fmt.Sprintf("%-*s %10s %6.1f%%",
			nameWidth, truncate(p.Name, nameWidth), FormatBytes(p.MemoryBytes), p.MemoryPercent))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
