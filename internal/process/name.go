package process

import (
	"fmt"
	"path/filepath"
	"strings"
)

// displayName picks the executable basename, then the kernel short name,
// then a pid placeholder.
func displayName(s Sample) string {
	if exe := strings.TrimSpace(s.ExePath); exe != "" {
		if base := filepath.Base(exe); base != "." && base != string(filepath.Separator) {
			return base
		}
	}
	if comm := strings.TrimSpace(s.Comm); comm != "" {
		return comm
	}
	return fmt.Sprintf("pid-%d", s.PID)
}
