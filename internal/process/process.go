package process

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ngenohkevin/nanostats/internal/system"
)

// DefaultMinResidentBytes is the RSS a process must exceed to be ranked
const DefaultMinResidentBytes uint64 = 1 << 20

// Source enumerates processes and reads their memory accounting
type Source interface {
	PIDs(ctx context.Context) ([]int32, error)
	Inspect(ctx context.Context, pid int32) (Sample, error)
}

// Ranker produces the top memory consumers
type Ranker struct {
	source      Source
	minResident uint64
	log         logrus.FieldLogger
}

// NewRanker creates a ranker reading from the platform's process tables
func NewRanker(minResident uint64, log logrus.FieldLogger) *Ranker {
	return NewRankerWithSource(gopsutilSource{}, minResident, log)
}

// NewRankerWithSource creates a ranker reading from the given source
func NewRankerWithSource(source Source, minResident uint64, log logrus.FieldLogger) *Ranker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ranker{
		source:      source,
		minResident: minResident,
		log:         log,
	}
}

// FetchTopMemoryProcesses returns up to limit processes ordered by resident
// memory, largest first. An enumeration failure yields an empty result.
//
// limit and totalPhysicalMemory must be positive.
func (r *Ranker) FetchTopMemoryProcesses(ctx context.Context, limit int, totalPhysicalMemory uint64) []ProcessDetails {
	if limit <= 0 {
		panic(fmt.Sprintf("process: limit must be positive, got %d", limit))
	}
	if totalPhysicalMemory == 0 {
		panic("process: total physical memory must be positive")
	}

	pids, err := r.source.PIDs(ctx)
	if err != nil {
		r.log.WithError(err).Debug("process enumeration failed")
		return []ProcessDetails{}
	}

	samples := make([]Sample, 0, len(pids))
	for _, pid := range pids {
		if pid <= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			r.log.WithError(err).Debug("process scan interrupted")
			return []ProcessDetails{}
		}

		// Processes exit or deny access mid-scan all the time
		sample, err := r.source.Inspect(ctx, pid)
		if err != nil {
			continue
		}
		samples = append(samples, sample)
	}

	return Rank(samples, limit, totalPhysicalMemory, r.minResident)
}

// Rank filters, deduplicates and orders samples. A later sample for the same
// pid replaces an earlier one. Ties on memory are ordered by pid ascending.
func Rank(samples []Sample, limit int, totalPhysicalMemory, minResident uint64) []ProcessDetails {
	byPID := make(map[int32]ProcessDetails, len(samples))
	for _, s := range samples {
		if s.PID <= 0 || s.ResidentBytes <= minResident {
			continue
		}
		byPID[s.PID] = ProcessDetails{
			PID:           s.PID,
			Name:          displayName(s),
			MemoryBytes:   s.ResidentBytes,
			MemoryPercent: system.Percent(s.ResidentBytes, totalPhysicalMemory),
		}
	}

	processes := make([]ProcessDetails, 0, len(byPID))
	for _, p := range byPID {
		processes = append(processes, p)
	}

	sort.Slice(processes, func(i, j int) bool {
		if processes[i].MemoryBytes != processes[j].MemoryBytes {
			return processes[i].MemoryBytes > processes[j].MemoryBytes
		}
		return processes[i].PID < processes[j].PID
	})

	if limit < len(processes) {
		processes = processes[:limit]
	}
	return processes
}
