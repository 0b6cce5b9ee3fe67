package tui

import "fmt"

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders a byte count in binary units
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	value := float64(b) / unit
	i := 0
	for value >= unit && i < len(byteUnits)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[i])
}

// FormatPercent renders a usage percentage for the status line
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
