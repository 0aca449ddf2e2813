package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/fetch"
	"github.com/migtools/siteaudit/internal/seo"
)

// NewSEOCmd creates the seo command.
func NewSEOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seo <url|url-list-file>",
		Short: "Audit pages for post-migration SEO metadata",
		Long: `SEO audits pages for the metadata that matters after a migration:
title, meta description, H1 count, image alt coverage, canonical link,
and OpenGraph tags.

The argument is either a single URL or a file containing one URL per
line. Results are written to a date-stamped CSV. Throttling responses
(429, 503) are retried honoring Retry-After.

Examples:
  siteaudit seo https://example.com/
  siteaudit seo urls.txt
  siteaudit seo --csv report.csv urls.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runSEOCmd,
	}

	cmd.Flags().String("csv", "audit-seo.csv",
		"Output CSV file (a date stamp is inserted before the extension)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the local history database")

	return cmd
}

// runSEOCmd executes the seo command.
func runSEOCmd(cmd *cobra.Command, args []string) error {
	csvBase, err := cmd.Flags().GetString("csv")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
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

	urls, err := loadTargets(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to audit in %s", args[0])
	}

	client := fetch.NewClient(fetch.WithTimeout(timeout))
	auditor := seo.New(fetch.NewRetrier(client), seo.WithLogger(logger))

	fmt.Printf("Auditing %d pages...\n", len(urls))
	startTime := time.Now()

	checks, err := auditor.Run(ctx, urls)
	if err != nil {
		return err
	}

	outputPath := seo.StampFilename(csvBase, startTime.Format("2006-01-02"))

	out, err := os.Create(outputPath) //nolint:gosec // User-chosen output path is intentional
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := seo.WriteCSV(out, checks); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Audit completed in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Saved SEO audit results to %s\n", outputPath)

	cfg := config.NewConfig()
	cfg.NoHistory = noHistory
	recordRun(ctx, cfg, logger, newRunRecord("seo", args[0], startTime,
		len(checks), len(checks), len(urls)-len(checks)))
	return nil
}

// loadTargets interprets the argument as a URL list file when it exists on
// disk, and as a single URL otherwise. URLs without a scheme get https://
// prepended.
func loadTargets(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		seed, err := config.NormalizeSeed(arg)
		if err != nil {
			return nil, err
		}
		return []string{seed}, nil
	}

	f, err := os.Open(arg) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seed, err := config.NormalizeSeed(line)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", line, err)
		}
		urls = append(urls, seed)
	}
	return urls, scanner.Err()
}
