// Package monitor drives the memory sampler and process ranker on a fixed
// interval and hands the results to the status display.
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/cache"
	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
)

// MemorySampler is satisfied by *system.Sampler
type MemorySampler interface {
	FetchTotalPhysicalMemory(ctx context.Context) (uint64, error)
	FetchMemoryBreakdown(ctx context.Context) (*system.MemoryBreakdown, error)
}

// ProcessRanker is satisfied by *process.Ranker
type ProcessRanker interface {
	FetchTopMemoryProcesses(ctx context.Context, limit int, totalPhysicalMemory uint64) []process.ProcessDetails
}

// Options controls sampling cadence and the process ranking
type Options struct {
	Interval      time.Duration
	Timeout       time.Duration
	Limit         int
	LazyProcesses bool
	CacheTTL      time.Duration
}

// OptionsFromConfig extracts monitor options from the loaded config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Interval:      cfg.Interval,
		Timeout:       cfg.SampleTimeout,
		Limit:         cfg.TopLimit,
		LazyProcesses: cfg.LazyProcesses,
		CacheTTL:      cfg.CacheTTL,
	}
}

// Snapshot is the outcome of one sampling cycle
type Snapshot struct {
	Timestamp time.Time                `json:"timestamp" yaml:"timestamp"`
	Memory    *system.MemoryBreakdown  `json:"memory,omitempty" yaml:"memory,omitempty"`
	MemoryErr error                    `json:"-" yaml:"-"`
	Processes []process.ProcessDetails `json:"processes" yaml:"processes"`
	// ProcessesFetched is false when the ranking was not requested or total
	// memory is still unknown
	ProcessesFetched bool `json:"processes_fetched" yaml:"processes_fetched"`
}

// Monitor runs at most one sample at a time
type Monitor struct {
	sampler MemorySampler
	ranker  ProcessRanker
	opts    Options
	log     logrus.FieldLogger
	now     func() time.Time

	inFlight sync.Mutex
	total    atomic.Uint64
	menuOpen atomic.Bool

	processes *cache.Cache[[]process.ProcessDetails]
}

// New creates a monitor. Call Close when done.
func New(sampler MemorySampler, ranker ProcessRanker, opts Options, log logrus.FieldLogger) *Monitor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Monitor{
		sampler:   sampler,
		ranker:    ranker,
		opts:      opts,
		log:       log,
		now:       time.Now,
		processes: cache.New[[]process.ProcessDetails](opts.CacheTTL),
	}
}

// Start fetches total physical memory. On failure later samples retry it.
func (m *Monitor) Start(ctx context.Context) error {
	total, err := m.ensureTotal(ctx)
	if err != nil {
		m.log.WithError(err).Warn("total physical memory unavailable, will retry")
		return err
	}
	m.log.WithField("total_bytes", total).Debug("total physical memory")
	return nil
}

// SetMenuOpen tells a lazy monitor whether the process ranking is on screen
func (m *Monitor) SetMenuOpen(open bool) {
	m.menuOpen.Store(open)
}

// WantsProcesses reports whether the next sample will rank processes
func (m *Monitor) WantsProcesses() bool {
	return !m.opts.LazyProcesses || m.menuOpen.Load()
}

// Sample runs one cycle. It returns false without sampling if another cycle
// is still running. The ranking is always re-read and replaces the cached one.
func (m *Monitor) Sample(ctx context.Context) (Snapshot, bool) {
	if !m.inFlight.TryLock() {
		m.log.Debug("previous sample still running, skipping tick")
		return Snapshot{}, false
	}
	defer m.inFlight.Unlock()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	snap := Snapshot{Timestamp: m.now()}

	snap.Memory, snap.MemoryErr = m.sampler.FetchMemoryBreakdown(ctx)
	if snap.MemoryErr != nil {
		m.log.WithError(snap.MemoryErr).Warn("memory breakdown unavailable")
	}

	if m.WantsProcesses() {
		procs, err := m.rank(ctx)
		if err != nil {
			m.log.WithError(err).Warn("skipping process ranking without total memory")
		} else {
			snap.Processes, snap.ProcessesFetched = procs, true
			if ctx.Err() == nil {
				m.processes.Set(cache.KeyTopProcesses, procs)
			}
		}
	}

	return snap, true
}

// Run samples immediately and then on every interval, sending each snapshot
// to out, until ctx is done.
func (m *Monitor) Run(ctx context.Context, out chan<- Snapshot) error {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		if snap, ok := m.Sample(ctx); ok {
			select {
			case out <- snap:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close releases the monitor's cache
func (m *Monitor) Close() {
	m.processes.Close()
}

// TopProcesses returns the ranking, reusing one younger than the cache TTL.
// It waits for a running sample instead of scanning alongside it. A scan cut
// short by ctx yields an empty ranking that is not cached. It fails only
// while total physical memory is unknown.
func (m *Monitor) TopProcesses(ctx context.Context) ([]process.ProcessDetails, error) {
	m.inFlight.Lock()
	defer m.inFlight.Unlock()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if _, err := m.ensureTotal(ctx); err != nil {
		return nil, err
	}

	procs, err := m.processes.GetOrSet(cache.KeyTopProcesses, func() ([]process.ProcessDetails, error) {
		procs, err := m.rank(ctx)
		if err != nil {
			return nil, err
		}
		return procs, ctx.Err()
	})
	if err != nil && ctx.Err() != nil {
		return []process.ProcessDetails{}, nil
	}
	return procs, err
}

func (m *Monitor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.opts.Timeout > 0 {
		return context.WithTimeout(ctx, m.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (m *Monitor) rank(ctx context.Context) ([]process.ProcessDetails, error) {
	total, err := m.ensureTotal(ctx)
	if err != nil {
		return nil, err
	}
	return m.ranker.FetchTopMemoryProcesses(ctx, m.opts.Limit, total), nil
}

func (m *Monitor) ensureTotal(ctx context.Context) (uint64, error) {
	if total := m.total.Load(); total > 0 {
		return total, nil
	}

	total, err := m.sampler.FetchTotalPhysicalMemory(ctx)
	if err != nil {
		return 0, err
	}

	m.total.CompareAndSwap(0, total)
	return m.total.Load(), nil
}
