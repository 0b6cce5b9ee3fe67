// Package logging configures the logrus logger shared by nanostats.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
)

// Options controls where and how much is logged
type Options struct {
	Level   string
	File    string
	Journal bool
	// Quiet discards output when no File is set, for when a TUI owns the terminal
	Quiet bool
}

// journalEnabled is stubbed in tests
var journalEnabled = journal.Enabled

// New builds a logger from opts. The returned closer releases the log file, if any.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	var closer io.Closer = nopCloser{}
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
		closer = f
	case opts.Quiet:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
	}

	if opts.Journal && journalEnabled() {
		logger.AddHook(NewJournalHook())
	}

	return logger, closer, nil
}

// ParseLevel accepts logrus level names plus "warn"
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return logrus.InfoLevel, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
