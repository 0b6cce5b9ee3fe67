// Package cli defines the nanostats command line.
package cli

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/app"
	"github.com/ngenohkevin/nanostats/internal/monitor"
	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
)

// Flags represent persistent command line flags
type Flags struct {
	LogLevel string
}

// newProbes builds the memory sampler and process ranker; stubbed in tests
var newProbes = func(cfg *config.Config, log logrus.FieldLogger) (monitor.MemorySampler, monitor.ProcessRanker) {
	return system.NewSampler(cfg.InactiveWeight), process.NewRanker(cfg.MinResident, log)
}

// hostInfo is stubbed in tests
var hostInfo = system.GetHostInfo

// RootCmd builds the command tree around cfg
func RootCmd(cfg *config.Config) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:          "nanostats",
		Short:        "Memory usage at a glance",
		Long:         "nanostats shows system memory usage and the processes using the most of it.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(withFlags(cfg, flags))
		},
	}

	// subcommands
	cmd.AddCommand(
		runCmd(cfg, flags),
		snapshotCmd(cfg, flags),
		watchCmd(cfg, flags),
	)

	// Flags
	cmd.PersistentFlags().StringVarP(&flags.LogLevel, "log-level", "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	return cmd
}

func runCmd(cfg *config.Config, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the interactive status display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(withFlags(cfg, flags))
		},
	}
}

func runDisplay(cfg *config.Config) error {
	a, err := app.New(cfg.Title, cfg)
	if err != nil {
		return errors.Wrap(err, "create status display")
	}
	defer a.Close()

	return errors.Wrap(a.Run(), "run status display")
}

// withFlags returns a copy of cfg with command line overrides applied
func withFlags(cfg *config.Config, flags *Flags) *config.Config {
	out := *cfg
	if flags.LogLevel != "" {
		out.LogLevel = flags.LogLevel
	}
	return &out
}
