// Package tui renders the memory status line and its dropdown menu in the
// terminal.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngenohkevin/nanostats/internal/monitor"
	"github.com/ngenohkevin/nanostats/internal/process"
)

// retryDelay spaces out sample retries while the menu waits for a ranking
const retryDelay = 250 * time.Millisecond

// Sampler is satisfied by *monitor.Monitor
type Sampler interface {
	Sample(ctx context.Context) (monitor.Snapshot, bool)
	TopProcesses(ctx context.Context) ([]process.ProcessDetails, error)
	SetMenuOpen(open bool)
}

// TickMsg triggers a scheduled sample
type TickMsg time.Time

// RetryMsg re-requests a sample that was skipped while the menu was open
type RetryMsg struct{}

// SnapshotMsg carries the result of a sample. Skipped is set when another
// sample was still running.
type SnapshotMsg struct {
	Snapshot monitor.Snapshot
	Skipped  bool
}

// ProcessesMsg carries a ranking read when the menu opens
type ProcessesMsg struct {
	Processes []process.ProcessDetails
	Err       error
}

// Model is the bubbletea model for the status display
type Model struct {
	ctx      context.Context
	sampler  Sampler
	title    string
	interval time.Duration
	keys     KeyMap

	// State
	snapshot         *monitor.Snapshot
	processes        []process.ProcessDetails
	processesFetched bool
	menuOpen         bool
}

// NewModel creates the status display model
func NewModel(ctx context.Context, sampler Sampler, title string, interval time.Duration) Model {
	return Model{
		ctx:      ctx,
		sampler:  sampler,
		title:    title,
		interval: interval,
		keys:     DefaultKeyMap(),
	}
}

// Init samples immediately and schedules the first tick
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sampleCmd(), m.tickCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(m.sampleCmd(), m.tickCmd())

	case RetryMsg:
		if m.menuOpen {
			return m, m.sampleCmd()
		}

	case SnapshotMsg:
		if msg.Skipped {
			if m.menuOpen && !m.processesFetched {
				return m, m.retryCmd()
			}
			return m, nil
		}
		snap := msg.Snapshot
		m.snapshot = &snap
		if snap.ProcessesFetched {
			m.processes = snap.Processes
			m.processesFetched = true
		}

	case ProcessesMsg:
		if msg.Err == nil {
			m.processes = msg.Processes
			m.processesFetched = true
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.menuOpen = !m.menuOpen
		m.sampler.SetMenuOpen(m.menuOpen)
		if m.menuOpen {
			return m, m.processesCmd()
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.sampleCmd()
	}

	return m, nil
}

func (m Model) sampleCmd() tea.Cmd {
	ctx, sampler := m.ctx, m.sampler
	return func() tea.Msg {
		snap, ok := sampler.Sample(ctx)
		return SnapshotMsg{Snapshot: snap, Skipped: !ok}
	}
}

func (m Model) processesCmd() tea.Cmd {
	ctx, sampler := m.ctx, m.sampler
	return func() tea.Msg {
		procs, err := sampler.TopProcesses(ctx)
		return ProcessesMsg{Processes: procs, Err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) retryCmd() tea.Cmd {
	return tea.Tick(retryDelay, func(time.Time) tea.Msg {
		return RetryMsg{}
	})
}
