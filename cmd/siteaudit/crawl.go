package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/crawler"
	"github.com/migtools/siteaudit/internal/fetch"
	"github.com/migtools/siteaudit/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl a site and collect reachable pathnames",
		Long: `Crawl performs a breadth-limited same-domain crawl from a seed URL.

It scans fetched HTML for links, images, form targets, data-* attributes,
and document URLs embedded in scripts, keeps the ones on the seed's host,
and writes the sorted, deduplicated pathnames to a text file.

Examples:
  # Crawl with defaults (50 pages, depth 2)
  siteaudit crawl example.com

  # Deeper crawl with a larger budget
  siteaudit crawl --max-pages 500 --depth 4 https://example.com

  # Markdown summary for a migration ticket
  siteaudit crawl --markdown example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum crawl depth (0 = seed page only)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent fetches per batch")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Pacing delay between request starts")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().StringP("output", "o", "url.txt",
		"Output file for discovered pathnames")
	cmd.Flags().BoolP("json", "j", false,
		"Print the crawl summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the crawl summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .siteaudit in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the local history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	seed, err := config.NormalizeSeed(cfg.Target)
	if err != nil {
		return err
	}
	seedURL, err := url.Parse(seed)
	if err != nil {
		return fmt.Errorf("invalid seed URL: %w", err)
	}
	site := cfg.Sites.ForHost(seedURL.Hostname())

	userAgent := cfg.UserAgent
	if site.UserAgent != "" {
		userAgent = site.UserAgent
	}
	delay := cfg.Delay
	if site.Delay.Duration > 0 {
		delay = site.Delay.Duration
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(userAgent),
		fetch.WithHeaders(site.Headers),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	c := crawler.New(client,
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithBatchSize(cfg.BatchSize),
		crawler.WithDelay(delay),
		crawler.WithLogger(logger),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
	)

	fmt.Printf("Crawling %s...\n", seed)
	startTime := time.Now()

	result, err := c.Crawl(ctx, seed)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Crawl completed in %s\n\n", elapsed.Round(time.Millisecond))

	// Pathname sink: no file is written when nothing was discovered.
	written, err := report.WritePathnameFile(cfg.OutputPath, result.Pathnames)
	if err != nil {
		return err
	}
	if written {
		fmt.Printf("Wrote %d pathnames to %s\n\n", len(result.Pathnames), cfg.OutputPath)
	} else {
		fmt.Println("No URLs discovered; no output file written.")
		fmt.Println()
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(os.Stdout)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(os.Stdout)
	default:
		writer = report.NewTextWriter(os.Stdout)
	}
	if _, err := writer.Write(result); err != nil {
		return err
	}

	recordRun(ctx, cfg, logger, newRunRecord("crawl", seed, startTime,
		result.PagesProcessed, result.Discovered(), len(result.Errors)))
	return nil
}

// buildCrawlConfig creates a Config from crawl command flags.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Target = args[0]

	var err error
	if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
		return nil, err
	}
	if cfg.MaxDepth, err = cmd.Flags().GetInt("depth"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.Delay, err = cmd.Flags().GetDuration("delay"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.NoHistory, err = cmd.Flags().GetBool("no-history"); err != nil {
		return nil, err
	}

	cfg.Sites, err = loadSites(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
