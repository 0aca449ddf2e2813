package model

import "net/http"

// Page represents a single fetched web page.
type Page struct {
	// URL is the fully-qualified URL that was fetched.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ContentType is the Content-Type response header value.
	ContentType string

	// Body is the decoded response body. Bodies are truncated to the
	// configured maximum size at fetch time.
	Body string

	// Title is the page title, populated when the body was parsed as HTML.
	Title string

	// Headers holds the response headers.
	Headers http.Header
}

// IsHTML reports whether the page's content type is HTML-like.
func (p *Page) IsHTML() bool {
	return isHTMLContentType(p.ContentType)
}
