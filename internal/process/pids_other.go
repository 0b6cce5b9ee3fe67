//go:build !darwin

package process

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// pidsWithContext is stubbed in tests
var pidsWithContext = process.PidsWithContext

// listPIDs re-reads the process table on every call. The probe is the
// directory scan itself, so the fetch just hands back what it found.
func listPIDs(ctx context.Context) ([]int32, error) {
	var pids []int32
	return enumeratePIDs(
		func() (int, error) {
			var err error
			pids, err = pidsWithContext(ctx)
			if err != nil {
				return 0, fmt.Errorf("failed to get processes: %w", err)
			}
			return len(pids), nil
		},
		func(buf []int32) (int, error) {
			return copy(buf, pids), nil
		},
	)
}
