package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// pidSlack leaves room for processes spawned between the size probe and the fetch
const pidSlack = 64

// gopsutilSource reads per-process accounting through gopsutil
type gopsutilSource struct{}

func (gopsutilSource) PIDs(ctx context.Context) ([]int32, error) {
	return listPIDs(ctx)
}

func (gopsutilSource) Inspect(ctx context.Context, pid int32) (Sample, error) {
	// Built directly rather than via NewProcess, which rescans the whole
	// process table to check existence. A vanished pid fails MemoryInfo.
	p := &process.Process{Pid: pid}

	memInfo, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to get memory info for pid %d: %w", pid, err)
	}
	if memInfo == nil {
		return Sample{}, fmt.Errorf("no memory info for pid %d", pid)
	}

	exe, _ := p.ExeWithContext(ctx)
	comm, _ := p.NameWithContext(ctx)

	return Sample{
		PID:           pid,
		ResidentBytes: memInfo.RSS,
		ExePath:       exe,
		Comm:          strings.TrimRight(comm, "\x00"),
	}, nil
}

// enumeratePIDs reads a pid table whose size changes between calls. probe
// reports the current count; fetch fills buf and reports how many entries it
// wrote. Only that many entries are returned.
func enumeratePIDs(probe func() (int, error), fetch func(buf []int32) (int, error)) ([]int32, error) {
	count, err := probe()
	if err != nil {
		return nil, fmt.Errorf("failed to probe process count: %w", err)
	}
	if count <= 0 {
		return nil, fmt.Errorf("process count probe returned %d", count)
	}

	buf := make([]int32, count+count/8+pidSlack)
	n, err := fetch(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("process listing returned %d", n)
	}
	if n > len(buf) {
		n = len(buf)
	}

	return buf[:n], nil
}
