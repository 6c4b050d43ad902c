package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"rtrsv/internal/journal"
	"rtrsv/internal/rsv"
)

var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rsvd",
	Short: "rsvd manages real-time CPU reservations with Rate-Monotonic priorities.",
	Long: `rsvd lets periodic tasks reserve a budget every period. Shorter periods get ` +
		`higher SCHED_FIFO priorities, each reservation is released at its period ` +
		`boundaries, and reservations are torn down when their task exits.`,
	SilenceUsage: true,
}

func init() {
	defaultConfig := os.Getenv("RSVD_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "rsvd.yml"
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages and every period release")

	rootCmd.AddCommand(serveCmd, demoCmd)
}

// Execute runs the CLI, then the registered exit handlers.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (rsv.Config, error) {
	cfg, err := rsv.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", configPath, err)
	}
	if v := os.Getenv("RSVD_LISTEN"); v != "" {
		cfg.Listen = v
	}
	return cfg, nil
}

// startJournal drains the manager's events into the configured recorders.
// The returned channel yields the drain result once the stream closes.
func startJournal(cfg rsv.Config, m *rsv.Manager, log *slog.Logger) (<-chan error, error) {
	recs := []journal.Recorder{journal.NewConsole(os.Stdout, verbose)}

	if cfg.CSVPath != "" {
		c, err := journal.CreateCSV(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("csv journal: %w", err)
		}
		recs = append(recs, c)
	}
	if cfg.SQLitePath != "" {
		db, err := journal.OpenSQLite(cfg.SQLitePath, 64)
		if err != nil {
			return nil, fmt.Errorf("sqlite journal: %w", err)
		}
		recs = append(recs, db)
	}

	done := make(chan error, 1)
	go func() {
		err := journal.Drain(context.Background(), m.Events(), recs...)
		if err != nil {
			log.Warn("journal", "err", err)
		}
		if n := m.Dropped(); n > 0 {
			log.Warn("events dropped", "count", n)
		}
		done <- err
	}()
	return done, nil
}
