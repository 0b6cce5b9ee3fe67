//go:build !darwin

package system

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubVirtualMemory(t *testing.T, stat *mem.VirtualMemoryStat, err error) {
	t.Helper()
	t.Cleanup(func() { virtualMemory = mem.VirtualMemoryWithContext })
	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return stat, err
	}
}

func TestGopsutilSource_Counters(t *testing.T) {
	stubVirtualMemory(t, &mem.VirtualMemoryStat{
		Total:    16 << 30,
		Active:   4096 * 100,
		Inactive: 4096 * 40,
		Wired:    4096 * 8,
	}, nil)

	src := gopsutilSource{pageSize: 4096}

	total, err := src.PhysicalMemory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16<<30), total)

	c, err := src.VMCounters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, VMCounters{ActivePages: 100, InactivePages: 40, WiredPages: 8, PageSize: 4096}, c)
}

func TestGopsutilSource_Error(t *testing.T) {
	stubVirtualMemory(t, nil, errors.New("no /proc"))

	src := gopsutilSource{pageSize: 4096}

	_, err := src.PhysicalMemory(context.Background())
	assert.Error(t, err)

	_, err = src.VMCounters(context.Background())
	assert.Error(t, err)
}

func TestGopsutilSource_ZeroPageSizeFailsSampler(t *testing.T) {
	stubVirtualMemory(t, &mem.VirtualMemoryStat{Total: 1 << 30, Active: 1 << 20}, nil)

	s := NewSamplerWithSource(gopsutilSource{}, DefaultInactiveWeight)

	b, err := s.FetchMemoryBreakdown(context.Background())
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrUnavailable)
}
