package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. CLI flags default to these; library callers
// constructing tools directly get slightly wider limits (see the crawler's
// option defaults) because programmatic use usually means an unattended run.
const (
	// DefaultMaxPages caps a crawl at 50 pages when started from the CLI.
	// Interactive runs are usually exploratory; a small cap keeps them
	// fast and polite. Override with --max-pages.
	DefaultMaxPages = 50

	// DefaultMaxDepth of 2 covers a typical site's landing pages and one
	// level of section pages, which is where migration breakage shows up.
	DefaultMaxDepth = 2

	// DefaultBatchSize is the number of concurrent fetches per crawl batch.
	// 10 is high enough to hide fetch latency without looking like a flood
	// to the target server.
	DefaultBatchSize = 10

	// DefaultCrawlDelay paces request starts within a batch. 100ms is a
	// token politeness delay; raise it for fragile staging environments.
	DefaultCrawlDelay = 100 * time.Millisecond

	// DefaultTimeout is the per-request timeout. Migration targets are
	// clearnet sites; 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies siteaudit in HTTP requests so that site
	// operators can recognize audit traffic in their logs.
	DefaultUserAgent = "siteaudit/1.0 (+https://github.com/migtools/siteaudit)"

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers any real HTML page while bounding memory per fetch.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultMaxRedirectHops bounds the redirect chain the auditor follows
	// before declaring a loop.
	DefaultMaxRedirectHops = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "siteaudit"
)

// Config holds all options for a siteaudit run. It is populated from CLI
// flags and passed through the application explicitly.
//
// Design decision: We use a single flat struct instead of per-tool nested
// structs. The tools share most knobs (timeout, user agent, delay), and
// nesting would add indirection without reducing coupling.
type Config struct {
	// Target is the seed URL or input file the subcommand operates on.
	Target string

	// MaxPages is the maximum number of pages to fetch in a crawl.
	MaxPages int

	// MaxDepth is the maximum crawl depth. Depth 0 fetches only the seed.
	MaxDepth int

	// BatchSize is the number of concurrent fetches per batch.
	BatchSize int

	// Delay paces request starts.
	Delay time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is sent as the User-Agent header on every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// OutputPath is the output file path. Empty means the subcommand's
	// conventional default (url.txt, redirect-audit.csv, ...).
	OutputPath string

	// JSONReport selects JSON output for the crawl report.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for the crawl report.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Verbose enables slog.LevelDebug logging.
	Verbose bool

	// ConfigFilePath is an explicit path to the YAML config file. Empty
	// means search the current directory and then the home directory.
	ConfigFilePath string

	// Sites holds per-site overrides loaded from the config file.
	Sites *File

	// NoHistory disables recording the run in the local history database.
	NoHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	HistoryDir string
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxPages:    DefaultMaxPages,
		MaxDepth:    DefaultMaxDepth,
		BatchSize:   DefaultBatchSize,
		Delay:       DefaultCrawlDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		HistoryDir:  XDGDataDir(),
	}
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any network activity.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// NormalizeSeed validates a seed URL, prepending "https://" when the scheme
// is missing, and returns the normalized absolute URL string.
func NormalizeSeed(seed string) (string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return "", ErrNoTarget
	}
	if !strings.Contains(seed, "://") {
		seed = "https://" + seed
	}

	u, err := url.Parse(seed)
	if err != nil {
		return "", ErrInvalidSeed
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidSeed
	}
	if u.Host == "" {
		return "", ErrInvalidSeed
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// XDGDataDir returns the XDG data directory for siteaudit.
// On Linux: ~/.local/share/siteaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for siteaudit.
// On Linux: ~/.config/siteaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
