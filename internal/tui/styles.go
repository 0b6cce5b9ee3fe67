package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorHealthy  = lipgloss.Color("42")
	colorModerate = lipgloss.Color("226")
	colorWarning  = lipgloss.Color("214")
	colorCritical = lipgloss.Color("196")
	colorEmpty    = lipgloss.Color("240")
	colorDim      = lipgloss.Color("246")
	colorAccent   = lipgloss.Color("39")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorCritical)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Align(lipgloss.Right).
			Width(10)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)

// severityColor picks the bar colour for a usage percentage
func severityColor(percent float64) lipgloss.Color {
	switch {
	case percent > 90:
		return colorCritical
	case percent > 70:
		return colorWarning
	case percent > 50:
		return colorModerate
	default:
		return colorHealthy
	}
}
