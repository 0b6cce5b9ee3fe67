package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBar draws a usage bar of the given width, coloured by severity
func RenderBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}

	ratio := percent / 100
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(severityColor(percent))
	emptyStyle := lipgloss.NewStyle().Foreground(colorEmpty)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String()
}
