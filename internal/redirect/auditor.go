package redirect

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/model"
)

// Auditor verifies redirect mappings.
type Auditor struct {
	httpClient  *http.Client
	userAgent   string
	headers     map[string]string
	concurrency int
	limiter     *rate.Limiter
	maxHops     int
	logger      *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Auditor) {
		a.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Auditor) {
		a.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(a *Auditor) {
		if ua != "" {
			a.userAgent = ua
		}
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(headers map[string]string) Option {
	return func(a *Auditor) {
		a.headers = headers
	}
}

// WithConcurrency sets how many checks run at once.
func WithConcurrency(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithDelay sets the pacing interval between request starts.
func WithDelay(d time.Duration) Option {
	return func(a *Auditor) {
		if d <= 0 {
			a.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithMaxHops sets the redirect chain length limit.
func WithMaxHops(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.maxHops = n
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Auditor with default settings.
func New(opts ...Option) *Auditor {
	a := &Auditor{
		httpClient: &http.Client{
			Timeout: config.DefaultTimeout,
			// Redirects are followed manually so hops can be counted.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:   config.DefaultUserAgent,
		concurrency: config.DefaultBatchSize,
		limiter:     rate.NewLimiter(rate.Every(config.DefaultCrawlDelay), 1),
		maxHops:     config.DefaultMaxRedirectHops,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run verifies all checks and returns results index-aligned with the input.
// Individual failures are recorded in their rows; the error return covers
// only context cancellation.
func (a *Auditor) Run(ctx context.Context, checks []model.RedirectCheck) ([]model.RedirectResult, error) {
	results := make([]model.RedirectResult, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, check := range checks {
		g.Go(func() error {
			if err := a.limiter.Wait(gctx); err != nil {
				return err
			}
			results[i] = a.verify(gctx, check)
			a.logger.Debug("redirect checked",
				"old", check.OldURL,
				"outcome", results[i].Outcome,
				"hops", results[i].Hops,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// verify follows the redirect chain of one check and classifies the result.
func (a *Auditor) verify(ctx context.Context, check model.RedirectCheck) model.RedirectResult {
	result := model.RedirectResult{Check: check}

	current := check.OldURL
	for {
		resp, err := a.get(ctx, current)
		if err != nil {
			result.Outcome = model.RedirectError
			result.Err = err.Error()
			return result
		}
		resp.Body.Close()

		result.StatusCode = resp.StatusCode
		result.ActualURL = current

		location := resp.Header.Get("Location")
		if !isRedirect(resp.StatusCode) || location == "" {
			break
		}
		if result.Hops >= a.maxHops {
			result.Outcome = model.RedirectError
			result.Err = "redirect chain too long"
			return result
		}

		next, err := resolveLocation(current, location)
		if err != nil {
			result.Outcome = model.RedirectError
			result.Err = err.Error()
			return result
		}
		current = next
		result.Hops++
	}

	if destinationsMatch(check.ExpectedURL, result.ActualURL) {
		result.Outcome = model.RedirectOK
	} else {
		result.Outcome = model.RedirectMismatch
	}
	return result
}

// get issues a single GET without following redirects.
func (a *Auditor) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", a.userAgent)
	for k, v := range a.headers {
		req.Header.Set(k, v)
	}
	return a.httpClient.Do(req)
}

// isRedirect reports whether an HTTP status is a redirect with a location.
func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}

// resolveLocation resolves a Location header value against the current URL.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(loc).String(), nil
}

// destinationsMatch compares the final URL against the expectation.
// When the expectation carries a host, both host and path must match; a
// bare-path expectation compares paths only, so mapping files can list
// destinations either way. Query strings and fragments are ignored.
func destinationsMatch(expected, actual string) bool {
	e, err := url.Parse(strings.TrimSpace(expected))
	if err != nil {
		return false
	}
	u, err := url.Parse(actual)
	if err != nil {
		return false
	}

	if e.Host != "" && !strings.EqualFold(e.Hostname(), u.Hostname()) {
		return false
	}
	return normalizePath(e.Path) == normalizePath(u.Path)
}

// normalizePath treats an empty path as the root.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
