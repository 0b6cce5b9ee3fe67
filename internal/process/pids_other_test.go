//go:build !darwin

package process

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPids(t *testing.T, pids []int32, err error) {
	t.Helper()
	t.Cleanup(func() { pidsWithContext = process.PidsWithContext })
	pidsWithContext = func(context.Context) ([]int32, error) {
		return pids, err
	}
}

func TestListPIDs(t *testing.T) {
	stubPids(t, []int32{1, 42, 314}, nil)

	pids, err := listPIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 42, 314}, pids)
}

func TestListPIDs_Error(t *testing.T) {
	stubPids(t, nil, errors.New("open /proc: permission denied"))

	pids, err := listPIDs(context.Background())
	assert.Error(t, err)
	assert.Nil(t, pids)
}

func TestGopsutilSource_InspectSelf(t *testing.T) {
	src := gopsutilSource{}
	self := int32(os.Getpid())

	pids, err := src.PIDs(context.Background())
	require.NoError(t, err)
	assert.Contains(t, pids, self)

	sample, err := src.Inspect(context.Background(), self)
	require.NoError(t, err)
	assert.Equal(t, self, sample.PID)
	assert.Greater(t, sample.ResidentBytes, uint64(0))
	assert.NotEqual(t, "pid-"+strconv.Itoa(int(self)), displayName(sample))
}
