package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngenohkevin/nanostats/internal/monitor"
	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
)

type fakeSampler struct {
	snap     monitor.Snapshot
	skip     bool
	topErr   error
	samples  int
	topCalls int
	menuOpen []bool
}

func (f *fakeSampler) Sample(context.Context) (monitor.Snapshot, bool) {
	f.samples++
	return f.snap, !f.skip
}

func (f *fakeSampler) TopProcesses(context.Context) ([]process.ProcessDetails, error) {
	f.topCalls++
	if f.topErr != nil {
		return nil, f.topErr
	}
	return f.snap.Processes, nil
}

func (f *fakeSampler) SetMenuOpen(open bool) {
	f.menuOpen = append(f.menuOpen, open)
}

func testBreakdown() *system.MemoryBreakdown {
	b := system.ComputeBreakdown(16e9, system.VMCounters{
		ActivePages:     4_000_000,
		InactivePages:   2_000_000,
		WiredPages:      1_000_000,
		CompressedPages: 500_000,
		PageSize:        1000,
	}, system.DefaultInactiveWeight)
	return &b
}

func testSnapshot() monitor.Snapshot {
	return monitor.Snapshot{
		Timestamp: time.Unix(1_700_000_000, 0),
		Memory:    testBreakdown(),
		Processes: []process.ProcessDetails{
			{PID: 88, Name: "WindowServer", MemoryBytes: 900 << 20, MemoryPercent: 5.9},
			{PID: 412, Name: "Safari", MemoryBytes: 600 << 20, MemoryPercent: 3.9},
		},
		ProcessesFetched: true,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_NoDataStatus(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	view := m.View()

	assert.Contains(t, view, "MEM")
	assert.Contains(t, view, "--")
}

func TestModel_SnapshotUpdatesStatus(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, cmd := update(t, m, SnapshotMsg{Snapshot: testSnapshot()})

	assert.Nil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "MEM 34%")
	assert.NotContains(t, view, "--")
	assert.NotContains(t, view, "WindowServer")
}

func TestModel_MemoryErrorShowsMarker(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, _ = update(t, m, SnapshotMsg{Snapshot: testSnapshot()})
	m, _ = update(t, m, SnapshotMsg{Snapshot: monitor.Snapshot{MemoryErr: system.ErrUnavailable}})

	assert.Contains(t, m.View(), "--")
}

func TestModel_SkippedSampleKeepsState(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, _ = update(t, m, SnapshotMsg{Snapshot: testSnapshot()})
	m, cmd := update(t, m, SnapshotMsg{Skipped: true})

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "34%")
}

func TestModel_ToggleMenu(t *testing.T) {
	sampler := &fakeSampler{snap: testSnapshot()}
	m := NewModel(context.Background(), sampler, "MEM", time.Second)

	lazy := testSnapshot()
	lazy.Processes, lazy.ProcessesFetched = nil, false
	m, _ = update(t, m, SnapshotMsg{Snapshot: lazy})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.menuOpen)
	require.NotNil(t, cmd)

	procMsg, ok := cmd().(ProcessesMsg)
	require.True(t, ok)
	require.NoError(t, procMsg.Err)
	assert.Equal(t, 1, sampler.topCalls)
	assert.Zero(t, sampler.samples)

	m, _ = update(t, m, procMsg)
	view := m.View()
	for _, label := range []string{"Used", "Active", "Wired", "Inactive", "Compressed", "Free", "Total", "Top processes"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "WindowServer")
	assert.Contains(t, view, "900.0 MiB")
	assert.Contains(t, view, "14.9 GiB")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.False(t, m.menuOpen)
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "WindowServer")
	assert.Equal(t, []bool{true, false}, sampler.menuOpen)
}

func TestModel_KeepsProcessesWhenNotFetched(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, SnapshotMsg{Snapshot: testSnapshot()})

	next := testSnapshot()
	next.Processes = nil
	next.ProcessesFetched = false
	m, _ = update(t, m, SnapshotMsg{Snapshot: next})

	assert.Contains(t, m.View(), "Safari")
}

func TestModel_RankingErrorKeepsProcesses(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, SnapshotMsg{Snapshot: testSnapshot()})
	m, _ = update(t, m, ProcessesMsg{Err: system.ErrUnavailable})

	assert.Contains(t, m.View(), "WindowServer")
}

func TestModel_SkippedSampleRetriedForOpenMenu(t *testing.T) {
	sampler := &fakeSampler{snap: testSnapshot(), topErr: system.ErrUnavailable}
	m := NewModel(context.Background(), sampler, "MEM", time.Second)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, ProcessesMsg{Err: system.ErrUnavailable})

	m, cmd := update(t, m, SnapshotMsg{Skipped: true})
	require.NotNil(t, cmd)

	m, cmd = update(t, m, RetryMsg{})
	require.NotNil(t, cmd)
	snapMsg, ok := cmd().(SnapshotMsg)
	require.True(t, ok)
	assert.Equal(t, 1, sampler.samples)

	m, _ = update(t, m, snapMsg)
	assert.Contains(t, m.View(), "WindowServer")

	// Once a ranking is showing, skipped samples wait for the next tick
	_, cmd = update(t, m, SnapshotMsg{Skipped: true})
	assert.Nil(t, cmd)
}

func TestModel_RetryIgnoredWhenMenuClosed(t *testing.T) {
	sampler := &fakeSampler{}
	m := NewModel(context.Background(), sampler, "MEM", time.Second)

	_, cmd := update(t, m, RetryMsg{})
	assert.Nil(t, cmd)

	_, cmd = update(t, m, SnapshotMsg{Skipped: true})
	assert.Nil(t, cmd)
}

func TestModel_MenuWithoutData(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "memory statistics unavailable")
	assert.Contains(t, view, "none")
}

func TestModel_Refresh(t *testing.T) {
	sampler := &fakeSampler{snap: testSnapshot()}
	m := NewModel(context.Background(), sampler, "MEM", time.Second)

	_, cmd := update(t, m, keyRunes("r"))
	require.NotNil(t, cmd)
	_, ok := cmd().(SnapshotMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, sampler.samples)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_TickSchedulesSample(t *testing.T) {
	m := NewModel(context.Background(), &fakeSampler{}, "MEM", time.Second)

	_, cmd := update(t, m, TickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.NotNil(t, m.Init())
}

func TestProcessRows(t *testing.T) {
	rows := ProcessRows(testSnapshot().Processes)

	assert.Contains(t, rows, "WindowServer")
	assert.Contains(t, rows, "600.0 MiB")
	assert.Contains(t, rows, "3.9%")
}
