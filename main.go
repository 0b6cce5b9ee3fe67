package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/cli"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := cli.RootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
