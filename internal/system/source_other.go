//go:build !darwin

package system

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/mem"
)

// virtualMemory is stubbed in tests
var virtualMemory = mem.VirtualMemoryWithContext

// gopsutilSource maps gopsutil's byte counts back onto pages.
// Compressed memory has no equivalent outside darwin and stays zero.
type gopsutilSource struct {
	pageSize uint64
}

func newPlatformSource() Source {
	return gopsutilSource{pageSize: uint64(os.Getpagesize())}
}

func (s gopsutilSource) PhysicalMemory(ctx context.Context) (uint64, error) {
	vmem, err := virtualMemory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get virtual memory: %w", err)
	}
	return vmem.Total, nil
}

func (s gopsutilSource) VMCounters(ctx context.Context) (VMCounters, error) {
	if s.pageSize == 0 {
		return VMCounters{}, nil
	}

	vmem, err := virtualMemory(ctx)
	if err != nil {
		return VMCounters{}, fmt.Errorf("failed to get virtual memory: %w", err)
	}

	return VMCounters{
		ActivePages:   vmem.Active / s.pageSize,
		InactivePages: vmem.Inactive / s.pageSize,
		WiredPages:    vmem.Wired / s.pageSize,
		PageSize:      s.pageSize,
	}, nil
}
