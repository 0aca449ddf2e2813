package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/model"
)

// Error describes a fetch that completed at the HTTP level but was rejected
// by policy: a non-success status or a non-HTML content type.
type Error struct {
	// URL is the URL that was fetched.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ContentType is the Content-Type header of the response.
	ContentType string

	// Reason is a short description of why the response was rejected.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s (status %d, content-type %q)",
		e.URL, e.Reason, e.StatusCode, e.ContentType)
}

// Client performs HTTP GETs with audit-friendly defaults: a descriptive
// User-Agent, bounded body reads, and charset-aware decoding.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	headers     map[string]string
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. Useful in tests and for
// callers that need custom redirect or transport behavior.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeaders sets extra request headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// NewClient creates a Client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: config.DefaultTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a URL and returns the page regardless of status code.
// Only transport-level failures return an error. Callers that require a
// success status should use GetHTML or check Page.StatusCode themselves.
func (c *Client) Get(ctx context.Context, pageURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	// Decode to UTF-8 using the declared charset; fall back to the raw
	// bytes when the declaration is absent or bogus.
	var reader io.Reader = io.LimitReader(resp.Body, c.maxBodySize)
	if decoded, err := charset.NewReader(reader, contentType); err == nil {
		reader = decoded
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return &model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        string(body),
		Headers:     resp.Header,
	}, nil
}

// GetHTML fetches a URL and requires a success status and an HTML-like
// content type. Rejections are returned as *Error.
func (c *Client) GetHTML(ctx context.Context, pageURL string) (*model.Page, error) {
	page, err := c.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if page.StatusCode < 200 || page.StatusCode > 299 {
		return nil, &Error{
			URL:         pageURL,
			StatusCode:  page.StatusCode,
			ContentType: page.ContentType,
			Reason:      "non-success status",
		}
	}
	if !page.IsHTML() {
		return nil, &Error{
			URL:         pageURL,
			StatusCode:  page.StatusCode,
			ContentType: page.ContentType,
			Reason:      "not an HTML document",
		}
	}
	return page, nil
}
