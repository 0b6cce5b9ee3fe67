// Package app wires the sampler, ranker, monitor and status display into a
// single handle that can be driven from Go or through the C ABI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/logging"
	"github.com/ngenohkevin/nanostats/internal/monitor"
	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
	"github.com/ngenohkevin/nanostats/internal/tui"
)

// ErrAlreadyRunning is returned when Run is called twice
var ErrAlreadyRunning = errors.New("app is already running")

// App owns the status display and everything feeding it
type App struct {
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
	monitor   *monitor.Monitor
	program   *tea.Program

	ctx    context.Context
	cancel context.CancelFunc

	started   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New creates an app titled title. An empty title falls back to cfg.Title
// and a nil cfg to the defaults.
func New(title string, cfg *config.Config) (*App, error) {
	return newApp(title, cfg)
}

func newApp(title string, cfg *config.Config, opts ...tea.ProgramOption) (*App, error) {
	if cfg == nil {
		cfg = config.LoadWithDefaults()
	}
	if title == "" {
		title = cfg.Title
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Journal: cfg.LogJournal,
		Quiet:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	sampler := system.NewSampler(cfg.InactiveWeight)
	ranker := process.NewRanker(cfg.MinResident, logger)
	mon := monitor.New(sampler, ranker, monitor.OptionsFromConfig(cfg), logger)

	ctx, cancel := context.WithCancel(context.Background())
	model := tui.NewModel(ctx, mon, title, cfg.Interval)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	return &App{
		cfg:       cfg,
		log:       logger,
		logCloser: closer,
		monitor:   mon,
		program:   tea.NewProgram(model, opts...),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}, nil
}

// Run shows the status display and blocks until the user quits, the process
// is signalled or Close is called.
func (a *App) Run() error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(a.done)

	if a.ctx.Err() != nil {
		return nil
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		select {
		case sig := <-quit:
			a.log.WithField("signal", sig.String()).Info("shutting down")
			a.cancel()
		case <-a.ctx.Done():
		}
	}()

	// A failure here is retried by every sample
	_ = a.monitor.Start(a.ctx)

	a.log.WithFields(logrus.Fields{
		"interval": a.cfg.Interval,
		"limit":    a.cfg.TopLimit,
		"lazy":     a.cfg.LazyProcesses,
	}).Info("status display started")

	_, err := a.program.Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil) {
		return fmt.Errorf("status display failed: %w", err)
	}

	a.log.Info("status display stopped")
	return nil
}

// Close stops a running display and releases resources. It is safe to call
// more than once and from another goroutine than Run.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.cancel()
		if a.started.Load() {
			<-a.done
		}
		a.monitor.Close()
		a.closeErr = a.logCloser.Close()
	})
	return a.closeErr
}
