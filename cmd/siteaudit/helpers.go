package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/database"
	auditlog "github.com/migtools/siteaudit/internal/log"
	"github.com/migtools/siteaudit/internal/model"
)

// setupLogger creates the redacting structured logger based on verbosity.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return auditlog.NewLogger(os.Stderr, level)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// loadSites loads the optional site configuration file. A missing file is
// only an error when the user asked for a specific path.
func loadSites(configPath string) (*config.File, error) {
	explicit := configPath != ""
	found := config.FindConfigFile(configPath)

	if found == "" {
		if explicit {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return &config.File{Sites: make(map[string]config.SiteConfig)}, nil
	}

	sites, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return sites, nil
}

// recordRun saves a run summary to the history database. History failures
// are logged, never fatal: the audit output already exists on disk.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run *model.RunRecord) {
	if cfg.NoHistory {
		return
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("history database unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}
	logger.Debug("run recorded", "tool", run.Tool, "target", run.Target)
}

// newRunRecord builds a RunRecord from a completed run.
func newRunRecord(tool, target string, startedAt time.Time, pages, discovered, errCount int) *model.RunRecord {
	return &model.RunRecord{
		Tool:           tool,
		Target:         target,
		StartedAt:      startedAt,
		Duration:       time.Since(startedAt),
		PagesProcessed: pages,
		URLsDiscovered: discovered,
		ErrorCount:     errCount,
	}
}
