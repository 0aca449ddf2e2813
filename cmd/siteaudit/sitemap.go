package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/report"
	"github.com/migtools/siteaudit/internal/sitemap"
)

// NewSitemapCmd creates the sitemap command.
func NewSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap <url>",
		Short: "Harvest canonical pathnames from robots.txt and sitemaps",
		Long: `Sitemap walks a site's robots.txt and XML sitemap tree.

Sitemap directives in robots.txt are followed (with /sitemap.xml as the
fallback), sitemap indexes are recursed into, and all same-host page URLs
are reduced to sorted, deduplicated pathnames.

Examples:
  siteaudit sitemap example.com
  siteaudit sitemap --output canonical.txt https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runSitemapCmd,
	}

	cmd.Flags().StringP("output", "o", "url.txt",
		"Output file for harvested pathnames")
	cmd.Flags().Int("max-sitemaps", 100,
		"Maximum number of sitemap documents to fetch")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Pacing delay between sitemap fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the local history database")

	return cmd
}

// runSitemapCmd executes the sitemap command.
func runSitemapCmd(cmd *cobra.Command, args []string) error {
	maxSitemaps, err := cmd.Flags().GetInt("max-sitemaps")
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

	seed, err := config.NormalizeSeed(args[0])
	if err != nil {
		return err
	}

	harvester := sitemap.New(
		sitemap.WithHTTPClient(&http.Client{Timeout: timeout}),
		sitemap.WithMaxSitemaps(maxSitemaps),
		sitemap.WithDelay(delay),
		sitemap.WithLogger(logger),
	)

	fmt.Printf("Harvesting sitemaps for %s...\n", seed)
	startTime := time.Now()

	result, err := harvester.Harvest(ctx, seed)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Harvest completed in %s\n\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  sitemaps walked: %d\n  pathnames:       %d\n  errors:          %d\n\n",
		len(result.SitemapsWalked), len(result.Pathnames), len(result.Errors))

	for _, e := range result.Errors {
		fmt.Printf("  error: %s: %s\n", e.URL, e.Message)
	}

	written, err := report.WritePathnameFile(outputPath, result.Pathnames)
	if err != nil {
		return err
	}
	if written {
		fmt.Printf("Wrote %d pathnames to %s\n", len(result.Pathnames), outputPath)
	} else {
		fmt.Println("No URLs discovered; no output file written.")
	}

	cfg := config.NewConfig()
	cfg.NoHistory = noHistory
	recordRun(ctx, cfg, logger, newRunRecord("sitemap", seed, startTime,
		len(result.SitemapsWalked), len(result.Pathnames), len(result.Errors)))
	return nil
}
