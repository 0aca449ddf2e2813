package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/model"
	"github.com/migtools/siteaudit/internal/redirect"
)

// NewRedirectsCmd creates the redirects command.
func NewRedirectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redirects <mapping.csv>",
		Short: "Verify that old URLs redirect to their new destinations",
		Long: `Redirects reads a CSV of old,new URL pairs and verifies each one.

Every old URL is requested, the redirect chain is followed and counted,
and the final location is compared with the expected destination. Results
are written as CSV with one row per pair: ok, mismatch, or error.

Examples:
  siteaudit redirects mapping.csv
  siteaudit redirects --output results.csv --concurrency 20 mapping.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runRedirectsCmd,
	}

	cmd.Flags().StringP("output", "o", "redirect-audit.csv",
		"Output CSV file for verification results")
	cmd.Flags().Int("concurrency", config.DefaultBatchSize,
		"Number of checks to run concurrently")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Pacing delay between request starts")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the local history database")

	return cmd
}

// runRedirectsCmd executes the redirects command.
func runRedirectsCmd(cmd *cobra.Command, args []string) error {
	mappingPath := args[0]

	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	f, err := os.Open(mappingPath) //nolint:gosec // User-provided mapping path is intentional
	if err != nil {
		return fmt.Errorf("open mapping file: %w", err)
	}
	checks, err := redirect.ReadChecks(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		return fmt.Errorf("mapping file %s contains no URL pairs", mappingPath)
	}

	auditor := redirect.New(
		redirect.WithTimeout(timeout),
		redirect.WithConcurrency(concurrency),
		redirect.WithDelay(delay),
		redirect.WithLogger(logger),
	)

	fmt.Printf("Verifying %d redirects...\n", len(checks))
	startTime := time.Now()

	results, err := auditor.Run(ctx, checks)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)

	out, err := os.Create(outputPath) //nolint:gosec // User-chosen output path is intentional
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := redirect.WriteResults(out, results); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	var ok, mismatch, failed int
	for _, res := range results {
		switch res.Outcome {
		case model.RedirectOK:
			ok++
		case model.RedirectMismatch:
			mismatch++
		case model.RedirectError:
			failed++
		}
	}

	fmt.Printf("Verification completed in %s\n\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  ok:       %d\n  mismatch: %d\n  error:    %d\n\n", ok, mismatch, failed)
	fmt.Printf("Results written to %s\n", outputPath)

	cfg := config.NewConfig()
	cfg.NoHistory = noHistory
	recordRun(ctx, cfg, logger, newRunRecord("redirects", mappingPath, startTime,
		len(results), ok, mismatch+failed))
	return nil
}
