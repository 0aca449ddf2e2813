package model

import (
	"net/url"
	"sort"
	"strings"
)

// CrawlError records a per-URL failure during a crawl. Failures never stop
// the crawl; they are accumulated and reported at the end.
type CrawlError struct {
	// URL is the URL whose fetch or extraction failed.
	URL string `json:"url"`

	// Message is the human-readable failure description.
	Message string `json:"message"`
}

// CrawlResult is the terminal snapshot of a crawl. It is produced once, when
// the crawl loop terminates, and is immutable thereafter.
type CrawlResult struct {
	// Seed is the normalized URL the crawl started from.
	Seed string `json:"seed"`

	// URLs is the sorted list of discovered same-host URLs.
	URLs []string `json:"urls"`

	// Pathnames is the sorted, deduplicated list of pathnames derived
	// from URLs.
	Pathnames []string `json:"pathnames"`

	// Errors lists per-URL failures encountered during the crawl.
	Errors []CrawlError `json:"errors,omitempty"`

	// PagesProcessed is the number of URLs dequeued and fetched
	// (successfully or not).
	PagesProcessed int `json:"pagesProcessed"`
}

// Discovered returns the number of distinct URLs discovered.
func (r *CrawlResult) Discovered() int {
	return len(r.URLs)
}

// Pathname reduces a URL to its path component: scheme, host, query, and
// fragment are stripped, and the result always starts with "/".
//
// Design decision: We return the path alone rather than path+query because
// migration QA compares site structure, and query strings are almost always
// tracking or session noise that would fragment the comparison.
func Pathname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to manual stripping for URLs net/url rejects.
		s := rawURL
		if i := strings.Index(s, "://"); i >= 0 {
			s = s[i+3:]
			if j := strings.Index(s, "/"); j >= 0 {
				s = s[j:]
			} else {
				s = "/"
			}
		}
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
		if !strings.HasPrefix(s, "/") {
			s = "/" + s
		}
		return s
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// ReducePathnames filters urls to those on host, converts each to a
// pathname, deduplicates, and sorts byte-wise. It is idempotent: feeding its
// output back through produces the same slice.
func ReducePathnames(urls []string, host string) []string {
	seen := make(map[string]bool, len(urls))
	paths := make([]string, 0, len(urls))

	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		// Entries that are already bare pathnames have no host and pass
		// the filter, which is what makes the reduction idempotent.
		if u.Host != "" && !strings.EqualFold(u.Hostname(), host) {
			continue
		}
		p := Pathname(raw)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	sort.Strings(paths)
	return paths
}

// isHTMLContentType reports whether a Content-Type header value denotes an
// HTML document.
func isHTMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "application/xhtml+xml")
}
