package system

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultInactiveWeight approximates how much inactive memory the OS reports as used
const DefaultInactiveWeight = 0.25

// ErrUnavailable marks system data that could not be read this time
var ErrUnavailable = errors.New("system memory data unavailable")

// Source reads raw memory figures from the operating system
type Source interface {
	PhysicalMemory(ctx context.Context) (uint64, error)
	VMCounters(ctx context.Context) (VMCounters, error)
}

// Sampler derives memory breakdowns from a Source.
//
// Total physical memory is fetched once and kept for the rest of the run.
// Until a fetch succeeds, every call asks the Source again.
type Sampler struct {
	source         Source
	inactiveWeight float64

	mu    sync.Mutex
	total uint64
}

// NewSampler creates a sampler reading from the platform's memory source
func NewSampler(inactiveWeight float64) *Sampler {
	return NewSamplerWithSource(newPlatformSource(), inactiveWeight)
}

// NewSamplerWithSource creates a sampler reading from the given source
func NewSamplerWithSource(source Source, inactiveWeight float64) *Sampler {
	return &Sampler{
		source:         source,
		inactiveWeight: inactiveWeight,
	}
}

// FetchTotalPhysicalMemory returns the installed physical memory in bytes
func (s *Sampler) FetchTotalPhysicalMemory(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.total > 0 {
		return s.total, nil
	}

	total, err := s.source.PhysicalMemory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get physical memory: %w: %w", ErrUnavailable, err)
	}
	if total == 0 {
		return 0, fmt.Errorf("failed to get physical memory: %w: reported zero bytes", ErrUnavailable)
	}

	s.total = total
	return total, nil
}

// FetchMemoryBreakdown reads the current VM counters and derives a breakdown.
// It returns nil and an error if any input is unavailable.
func (s *Sampler) FetchMemoryBreakdown(ctx context.Context) (*MemoryBreakdown, error) {
	total, err := s.FetchTotalPhysicalMemory(ctx)
	if err != nil {
		return nil, err
	}

	counters, err := s.source.VMCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vm counters: %w: %w", ErrUnavailable, err)
	}
	if counters.PageSize == 0 {
		return nil, fmt.Errorf("failed to get vm counters: %w: zero page size", ErrUnavailable)
	}

	breakdown := ComputeBreakdown(total, counters, s.inactiveWeight)
	return &breakdown, nil
}

// ComputeBreakdown derives used, free and percentage figures from raw counters.
// total must be positive.
func ComputeBreakdown(total uint64, c VMCounters, inactiveWeight float64) MemoryBreakdown {
	active := c.ActivePages * c.PageSize
	wired := c.WiredPages * c.PageSize
	inactive := c.InactivePages * c.PageSize
	compressed := c.CompressedPages * c.PageSize

	used := active + wired + uint64(float64(inactive)*inactiveWeight)

	var free uint64
	if total > used {
		free = total - used
	}

	return MemoryBreakdown{
		TotalBytes:      total,
		ActiveBytes:     active,
		WiredBytes:      wired,
		InactiveBytes:   inactive,
		CompressedBytes: compressed,
		UsedBytes:       used,
		FreeBytes:       free,
		UsagePercent:    Percent(used, total),
	}
}

// Percent returns part/total*100 clamped to [0, 100]
func Percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(part) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
