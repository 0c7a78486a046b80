package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/cli"
	"github.com/mmynk/costsplits/internal/config"
	"github.com/mmynk/costsplits/internal/metrics"
	"github.com/mmynk/costsplits/internal/storage"
	"github.com/mmynk/costsplits/internal/storage/sqlite"
	"github.com/mmynk/costsplits/pkg/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	logging.SetupWithLevel(cfg.LogLevel)

	m := metrics.New()
	app := &cli.App{
		Config:  cfg,
		Metrics: m,
		OpenStore: func() (storage.Store, error) {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return nil, err
			}
			slog.Debug("Storage initialized", "database", cfg.DBPath)
			return store, nil
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	commander := subcommands.NewCommander(flag.CommandLine, "costsplits")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	pretty := flag.Bool("pretty", false, "Render output for the terminal")
	flag.Parse()
	app.Styled = *pretty

	status := commander.Execute(context.Background())

	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		slog.Warn("Failed to export metrics", "file", cfg.MetricsFile, "error", err)
	}
	return int(status)
}
