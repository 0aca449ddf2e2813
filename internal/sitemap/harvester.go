package sitemap

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/model"
)

// Harvest limits. Sitemap indexes nest rarely beyond two levels in the
// wild; the caps exist to stop cycles and index bombs, not to constrain
// legitimate sites.
const (
	defaultMaxTreeDepth = 5
	defaultMaxSitemaps  = 100
)

// Result is the outcome of a sitemap harvest.
type Result struct {
	// Pathnames is the sorted, deduplicated list of same-host pathnames
	// found in the sitemap tree.
	Pathnames []string

	// SitemapsWalked lists the sitemap documents that were fetched.
	SitemapsWalked []string

	// Errors lists per-document failures. A failed sitemap document does
	// not stop the harvest.
	Errors []model.CrawlError
}

// Harvester walks robots.txt and XML sitemap trees.
type Harvester struct {
	httpClient  *http.Client
	userAgent   string
	limiter     *rate.Limiter
	maxDepth    int
	maxSitemaps int
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(h *Harvester) {
		h.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *Harvester) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithDelay sets the pacing interval between sitemap fetches.
func WithDelay(d time.Duration) Option {
	return func(h *Harvester) {
		if d <= 0 {
			h.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		h.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithMaxTreeDepth caps sitemap-index nesting.
func WithMaxTreeDepth(n int) Option {
	return func(h *Harvester) {
		if n > 0 {
			h.maxDepth = n
		}
	}
}

// WithMaxSitemaps caps the number of sitemap documents fetched.
func WithMaxSitemaps(n int) Option {
	return func(h *Harvester) {
		if n > 0 {
			h.maxSitemaps = n
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harvester) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Harvester with default settings.
func New(opts ...Option) *Harvester {
	h := &Harvester{
		httpClient:  &http.Client{Timeout: config.DefaultTimeout},
		userAgent:   config.DefaultUserAgent,
		limiter:     rate.NewLimiter(rate.Every(config.DefaultCrawlDelay), 1),
		maxDepth:    defaultMaxTreeDepth,
		maxSitemaps: defaultMaxSitemaps,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest enumerates pathnames for the site identified by seed.
func (h *Harvester) Harvest(ctx context.Context, seed string) (*Result, error) {
	base, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid site URL %q: scheme must be http or https", seed)
	}
	host := base.Hostname()

	result := &Result{}

	roots, err := h.discoverRoots(ctx, base, result)
	if err != nil {
		return nil, err
	}

	// Walk the sitemap tree breadth-first. Sitemap URLs get their own
	// visited set; page URLs are collected and reduced at the end.
	type queueItem struct {
		url   string
		depth int
	}

	queue := make([]queueItem, 0, len(roots))
	visited := make(map[string]bool)
	for _, root := range roots {
		queue = append(queue, queueItem{url: root})
	}

	pageURLs := make([]string, 0)
	fetched := 0

	for len(queue) > 0 && fetched < h.maxSitemaps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		if visited[item.url] {
			continue
		}
		visited[item.url] = true
		fetched++

		doc, err := h.fetchSitemap(ctx, item.url)
		if err != nil {
			result.Errors = append(result.Errors, model.CrawlError{
				URL:     item.url,
				Message: err.Error(),
			})
			continue
		}
		result.SitemapsWalked = append(result.SitemapsWalked, item.url)

		h.logger.Debug("sitemap walked",
			"url", item.url,
			"urls", len(doc.URLs),
			"children", len(doc.Sitemaps),
		)

		for _, loc := range doc.URLs {
			pageURLs = append(pageURLs, strings.TrimSpace(loc.Value))
		}

		if item.depth < h.maxDepth {
			for _, loc := range doc.Sitemaps {
				child := strings.TrimSpace(loc.Value)
				if child != "" && !visited[child] {
					queue = append(queue, queueItem{url: child, depth: item.depth + 1})
				}
			}
		}
	}

	result.Pathnames = model.ReducePathnames(pageURLs, host)
	return result, nil
}

// discoverRoots reads robots.txt for Sitemap directives, falling back to
// the conventional /sitemap.xml location.
func (h *Harvester) discoverRoots(ctx context.Context, base *url.URL, result *Result) ([]string, error) {
	robotsURL := base.Scheme + "://" + base.Host + "/robots.txt"

	fallback := []string{base.Scheme + "://" + base.Host + "/sitemap.xml"}

	status, body, err := h.get(ctx, robotsURL)
	if err != nil {
		result.Errors = append(result.Errors, model.CrawlError{
			URL:     robotsURL,
			Message: err.Error(),
		})
		return fallback, nil
	}

	robots, err := robotstxt.FromStatusAndBytes(status, body)
	if err != nil {
		result.Errors = append(result.Errors, model.CrawlError{
			URL:     robotsURL,
			Message: err.Error(),
		})
		return fallback, nil
	}

	if len(robots.Sitemaps) == 0 {
		return fallback, nil
	}

	h.logger.Debug("robots.txt declared sitemaps", "count", len(robots.Sitemaps))
	return robots.Sitemaps, nil
}

// sitemapDoc is the union of the two sitemap document shapes: a <urlset>
// listing page URLs and a <sitemapindex> listing child sitemaps.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []locEntry `xml:"url"`
	Sitemaps []locEntry `xml:"sitemap"`
}

// locEntry carries the <loc> child of a <url> or <sitemap> element.
type locEntry struct {
	Value string `xml:"loc"`
}

// fetchSitemap fetches and decodes one sitemap document.
func (h *Harvester) fetchSitemap(ctx context.Context, sitemapURL string) (*sitemapDoc, error) {
	status, body, err := h.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", sitemapURL, status)
	}

	reader, err := maybeGunzip(sitemapURL, body)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", sitemapURL, err)
	}

	var doc sitemapDoc
	decoder := xml.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", sitemapURL, err)
	}
	return &doc, nil
}

// get fetches raw bytes with pacing applied.
func (h *Harvester) get(ctx context.Context, rawURL string) (int, []byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// maybeGunzip wraps body in a gzip reader when the sitemap is compressed.
// Detection is by magic bytes first, then the .gz extension, since servers
// hand out .xml.gz files under misleading content types.
func maybeGunzip(sitemapURL string, body []byte) (io.Reader, error) {
	isGzip := len(body) > 2 && body[0] == 0x1f && body[1] == 0x8b
	if !isGzip && !strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		return bytes.NewReader(body), nil
	}
	return gzip.NewReader(bytes.NewReader(body))
}
