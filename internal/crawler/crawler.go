package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/migtools/siteaudit/internal/fetch"
	"github.com/migtools/siteaudit/internal/model"
)

// Programmatic defaults. These are wider than the CLI defaults in
// internal/config because library callers usually run unattended.
const (
	defaultMaxPages  = 100
	defaultMaxDepth  = 3
	defaultBatchSize = 10
	defaultDelay     = 100 * time.Millisecond
)

// Crawler performs a breadth-limited same-domain crawl, discovering
// reachable URLs by scanning fetched HTML.
//
// A Crawler is single-use: Crawl may be called once per instance.
type Crawler struct {
	client    *fetch.Client
	logger    *slog.Logger
	maxPages  int
	maxDepth  int
	batchSize int
	limiter   *rate.Limiter

	// ignorePatterns are glob path patterns never enqueued.
	ignorePatterns []string

	// followPatterns restrict enqueueing to matching paths when non-empty.
	followPatterns []string

	// frontier holds URLs pending a fetch, in insertion order, with the
	// BFS depth at which each was discovered.
	frontier []frontierEntry

	// pending mirrors frontier membership for O(1) duplicate checks.
	pending map[string]bool

	// visited holds every URL already dequeued for fetching. It grows
	// monotonically and is disjoint from pending: dequeuing removes a URL
	// from the frontier and marks it visited in the same step.
	visited map[string]bool

	// discovered accumulates every same-host URL that passed validity
	// filtering, whether or not it was crawled.
	discovered map[string]bool

	errs           []model.CrawlError
	pagesProcessed int
}

// frontierEntry is one URL pending a fetch.
type frontierEntry struct {
	url   string
	depth int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxPages sets the maximum number of pages to fetch.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed plus directly linked pages, etc.
func WithMaxDepth(depth int) Option {
	return func(c *Crawler) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithBatchSize sets the number of concurrent fetches per batch.
func WithBatchSize(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithDelay sets the pacing interval between request starts.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets the logger used for crawl progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIgnorePatterns sets glob path patterns to skip during crawling.
func WithIgnorePatterns(patterns []string) Option {
	return func(c *Crawler) {
		c.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets glob path patterns to restrict crawling to.
// Empty means all paths are allowed (subject to ignore patterns).
func WithFollowPatterns(patterns []string) Option {
	return func(c *Crawler) {
		c.followPatterns = patterns
	}
}

// New creates a Crawler that fetches through the given client.
//
// Design decision: We require an external fetch client rather than building
// one because it keeps transport configuration (timeouts, headers, test
// servers) in one place and matches how the other audit tools are wired.
func New(client *fetch.Client, opts ...Option) *Crawler {
	c := &Crawler{
		client:     client,
		logger:     slog.Default(),
		maxPages:   defaultMaxPages,
		maxDepth:   defaultMaxDepth,
		batchSize:  defaultBatchSize,
		limiter:    rate.NewLimiter(rate.Every(defaultDelay), 1),
		pending:    make(map[string]bool),
		visited:    make(map[string]bool),
		discovered: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl runs the crawl from seed and returns the terminal result snapshot.
// Per-URL failures are recorded in the result, not returned as errors; the
// error return covers only an unusable seed or context cancellation.
func (c *Crawler) Crawl(ctx context.Context, seed string) (*model.CrawlResult, error) {
	start, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		return nil, fmt.Errorf("invalid seed URL %q: scheme must be http or https", seed)
	}
	host := start.Hostname()

	c.enqueue(start.String(), 0)

	for len(c.frontier) > 0 && c.pagesProcessed < c.maxPages {
		select {
		case <-ctx.Done():
			return c.snapshot(start.String(), host), ctx.Err()
		default:
		}

		// The batch never exceeds the remaining page budget, so a crawl
		// stops at exactly maxPages rather than overshooting mid-batch.
		n := c.batchSize
		if remaining := c.maxPages - c.pagesProcessed; remaining < n {
			n = remaining
		}
		batch := c.dequeueBatch(n)

		results := c.fetchBatch(ctx, batch)

		// Apply discoveries after the whole batch has settled. This is
		// the only place frontier, discovered, and errs are mutated, so
		// the sets need no locking.
		for _, res := range results {
			c.pagesProcessed++

			if res.err != nil {
				c.errs = append(c.errs, model.CrawlError{
					URL:     res.entry.url,
					Message: res.err.Error(),
				})
				c.logger.Debug("fetch failed", "url", res.entry.url, "error", res.err)
				continue
			}

			c.logger.Debug("page processed",
				"url", res.entry.url,
				"depth", res.entry.depth,
				"links", len(res.links),
			)

			for _, link := range res.links {
				c.discovered[link] = true
				if res.entry.depth < c.maxDepth && c.shouldCrawl(link) {
					c.enqueue(link, res.entry.depth+1)
				}
			}
		}
	}

	return c.snapshot(start.String(), host), nil
}

// batchResult pairs a frontier entry with its fetch outcome.
type batchResult struct {
	entry frontierEntry
	links []string
	err   error
}

// fetchBatch fetches all entries concurrently and waits for every fetch to
// settle. Results are index-aligned with the batch so application order is
// deterministic.
func (c *Crawler) fetchBatch(ctx context.Context, batch []frontierEntry) []batchResult {
	results := make([]batchResult, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchSize)

	for i, entry := range batch {
		results[i].entry = entry
		g.Go(func() error {
			// Pace request starts. A cancelled context surfaces as a
			// recorded per-URL error rather than aborting the batch.
			if err := c.limiter.Wait(gctx); err != nil {
				results[i].err = err
				return nil
			}

			page, err := c.client.GetHTML(gctx, entry.url)
			if err != nil {
				results[i].err = err
				return nil
			}

			extractor, err := NewExtractor(entry.url)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].links = extractor.Extract(page.Body)
			return nil
		})
	}

	// Goroutines never return errors; Wait is only a barrier.
	_ = g.Wait() //nolint:errcheck // all failures are recorded per-URL
	return results
}

// enqueue adds a URL to the frontier unless it is already pending or
// visited.
func (c *Crawler) enqueue(rawURL string, depth int) {
	key := normalizeURL(rawURL)
	if c.pending[key] || c.visited[key] {
		return
	}
	c.pending[key] = true
	c.frontier = append(c.frontier, frontierEntry{url: rawURL, depth: depth})
}

// dequeueBatch removes up to n URLs from the frontier in insertion order,
// marking each visited immediately so no URL can be fetched twice.
func (c *Crawler) dequeueBatch(n int) []frontierEntry {
	if n > len(c.frontier) {
		n = len(c.frontier)
	}
	batch := c.frontier[:n]
	c.frontier = c.frontier[n:]

	for _, entry := range batch {
		key := normalizeURL(entry.url)
		delete(c.pending, key)
		c.visited[key] = true
	}
	return batch
}

// shouldCrawl applies the ignore/follow glob patterns to a URL's path.
func (c *Crawler) shouldCrawl(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range c.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(c.followPatterns) > 0 {
		for _, pattern := range c.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// snapshot builds the immutable terminal result.
func (c *Crawler) snapshot(seed, host string) *model.CrawlResult {
	urls := make([]string, 0, len(c.discovered))
	for u := range c.discovered {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	return &model.CrawlResult{
		Seed:           seed,
		URLs:           urls,
		Pathnames:      model.ReducePathnames(urls, host),
		Errors:         c.errs,
		PagesProcessed: c.pagesProcessed,
	}
}

// normalizeURL normalizes a URL for frontier and visited-set keys:
// fragment stripped, scheme and host lowercased, empty path treated as "/".
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
