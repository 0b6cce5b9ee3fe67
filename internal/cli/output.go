package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/ngenohkevin/nanostats/internal/tui"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func validFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeReport(w io.Writer, format string, r Report, color bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, r, color)
	}
}

func writeTable(w io.Writer, r Report, color bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.Host != nil {
		fmt.Fprintf(tw, "HOST\t%s (%s %s, up %s)\n", r.Host.Hostname, r.Host.Platform, r.Host.PlatformVersion, r.Host.UptimeHuman)
	}

	if mem := r.Memory; mem != nil {
		usage := tui.FormatPercent(mem.UsagePercent)
		if color {
			usage += " " + tui.RenderBar(mem.UsagePercent, 20)
		}
		fmt.Fprintf(tw, "MEMORY\t%s\n", usage)
		for _, row := range []struct {
			label string
			bytes uint64
		}{
			{"used", mem.UsedBytes},
			{"active", mem.ActiveBytes},
			{"wired", mem.WiredBytes},
			{"inactive", mem.InactiveBytes},
			{"compressed", mem.CompressedBytes},
			{"free", mem.FreeBytes},
			{"total", mem.TotalBytes},
		} {
			fmt.Fprintf(tw, "  %s\t%s\n", row.label, tui.FormatBytes(row.bytes))
		}
	} else {
		fmt.Fprintf(tw, "MEMORY\t--\t%s\n", r.Error)
	}

	if r.ProcessesFetched {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "PID\tNAME\tMEMORY\tPERCENT")
		for _, p := range r.Processes {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f%%\n", p.PID, p.Name, tui.FormatBytes(p.MemoryBytes), p.MemoryPercent)
		}
	}

	return tw.Flush()
}
