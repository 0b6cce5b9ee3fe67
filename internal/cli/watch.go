package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/logging"
	"github.com/ngenohkevin/nanostats/internal/monitor"
)

type watchFlags struct {
	Count int
}

func watchCmd(cfg *config.Config, flags *Flags) *cobra.Command {
	wf := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sample on the configured interval and log each result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd.ErrOrStderr(), withFlags(cfg, flags), wf)
		},
	}

	cmd.Flags().IntVarP(&wf.Count, "count", "c", 0, "stop after this many samples (0 runs until interrupted)")

	return cmd
}

func runWatch(ctx context.Context, stderr io.Writer, cfg *config.Config, wf *watchFlags) error {
	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Journal: cfg.LogJournal})
	if err != nil {
		return errors.Wrap(err, "set up logging")
	}
	defer closer.Close()
	if cfg.LogFile == "" {
		logger.SetOutput(stderr)
	}

	opts := monitor.OptionsFromConfig(cfg)
	opts.LazyProcesses = false

	sampler, ranker := newProbes(cfg, logger)
	mon := monitor.New(sampler, ranker, opts, logger)
	defer mon.Close()

	_ = mon.Start(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshots := make(chan monitor.Snapshot)
	errCh := make(chan error, 1)
	go func() { errCh <- mon.Run(ctx, snapshots) }()

	logger.WithField("interval", cfg.Interval).Info("watching memory")

	seen := 0
	for {
		select {
		case snap := <-snapshots:
			logSnapshot(logger, snap)
			seen++
			if wf.Count > 0 && seen >= wf.Count {
				cancel()
				<-errCh
				return nil
			}
		case err := <-errCh:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return errors.Wrap(err, "watch memory")
		}
	}
}

func logSnapshot(log logrus.FieldLogger, snap monitor.Snapshot) {
	if snap.MemoryErr != nil {
		log.WithError(snap.MemoryErr).Warn("memory sample failed")
		return
	}

	fields := logrus.Fields{
		"usage_percent": snap.Memory.UsagePercent,
		"used_bytes":    snap.Memory.UsedBytes,
		"free_bytes":    snap.Memory.FreeBytes,
	}
	if len(snap.Processes) > 0 {
		top := snap.Processes[0]
		fields["top_process"] = top.Name
		fields["top_process_bytes"] = top.MemoryBytes
	}
	log.WithFields(fields).Info("memory sample")
}
