package cli

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/logging"
	"github.com/ngenohkevin/nanostats/internal/monitor"
	"github.com/ngenohkevin/nanostats/internal/system"
)

type snapshotFlags struct {
	Format string
	Limit  int
}

// Report is what the snapshot command prints
type Report struct {
	Host             *system.HostInfo `json:"host,omitempty" yaml:"host,omitempty"`
	monitor.Snapshot `yaml:",inline"`
	Error            string `json:"error,omitempty" yaml:"error,omitempty"`
}

func snapshotCmd(cfg *config.Config, flags *Flags) *cobra.Command {
	sf := &snapshotFlags{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Take one sample and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), withFlags(cfg, flags), sf)
		},
	}

	cmd.Flags().StringVarP(&sf.Format, "format", "f", FormatTable, "output format (table, json, yaml)")
	cmd.Flags().IntVarP(&sf.Limit, "limit", "n", 0, "number of processes to list (default TOP_PROCESS_LIMIT)")

	return cmd
}

func runSnapshot(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, sf *snapshotFlags) error {
	if !validFormat(sf.Format) {
		return errors.Errorf("unknown format %q", sf.Format)
	}
	if sf.Limit < 0 {
		return errors.Errorf("limit must be positive, got %d", sf.Limit)
	}
	if sf.Limit > 0 {
		cfg.TopLimit = sf.Limit
	}
	if ctx == nil {
		ctx = context.Background()
	}

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
	snap, _ := mon.Sample(ctx)

	report := Report{Snapshot: snap}
	if host, err := hostInfo(ctx); err != nil {
		logger.WithError(err).Debug("host info unavailable")
	} else {
		report.Host = host
	}
	if snap.MemoryErr != nil {
		report.Error = snap.MemoryErr.Error()
	}

	if err := writeReport(stdout, sf.Format, report, isTerminal(stdout)); err != nil {
		return errors.Wrap(err, "write snapshot")
	}

	return errors.Wrap(snap.MemoryErr, "sample memory")
}
