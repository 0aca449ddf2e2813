package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// docURLRegex matches URL-like strings ending in common document extensions
// inside script content. Script bodies embed navigation targets as string
// literals that no tag walk can see, and the extension requirement keeps
// the false-positive rate tolerable.
var docURLRegex = regexp.MustCompile(`(?:https?:)?//[^\s"'<>\\]+\.(?:html?|php|aspx?|jsp|pdf|docx?|xlsx?)|/[A-Za-z0-9_\-./%]*\.(?:html?|php|aspx?|jsp|pdf|docx?|xlsx?)`)

// Extractor pulls candidate URLs out of an HTML document.
//
// Five independent sources are scanned: hyperlink targets (<a href>),
// image sources (<img src>), form targets (<form action>), values of
// data-* attributes, and document-extension URL strings embedded in script
// text. Every candidate is resolved against the page URL and kept only if
// it lives on the same host and passes the validity filter.
//
// Design decision: We walk a parsed DOM (golang.org/x/net/html) for the
// four tag-based sources instead of scanning with regexes because the
// parser tolerates the malformed HTML that real sites serve and does not
// produce the attribute-soup artifacts a regex scan must then filter out.
// Only the script-text source keeps a regex, since string literals inside
// JavaScript have no markup structure to parse.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates an Extractor that resolves candidates against
// baseURL.
func NewExtractor(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{base: u}, nil
}

// Extract parses content and returns the deduplicated set of same-host,
// valid URLs found in it, in first-seen order.
func (e *Extractor) Extract(content string) []string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		// html.Parse almost never fails (it repairs as it goes), but a
		// candidate source we cannot parse yields no candidates.
		return nil
	}

	seen := make(map[string]bool)
	urls := make([]string, 0)

	add := func(candidate string) {
		resolved, ok := e.normalize(candidate)
		if !ok || seen[resolved] {
			return
		}
		seen[resolved] = true
		urls = append(urls, resolved)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					add(href)
				}
			case "img":
				if src := getAttr(n, "src"); src != "" {
					add(src)
				}
			case "form":
				if action := getAttr(n, "action"); action != "" {
					add(action)
				}
			case "script":
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.TextNode {
						for _, m := range docURLRegex.FindAllString(c.Data, -1) {
							add(m)
						}
					}
				}
			}

			// data-* attributes carry lazy-loaded sources and SPA routes
			// on any element type.
			for _, attr := range n.Attr {
				if strings.HasPrefix(attr.Key, "data-") && attr.Val != "" {
					add(attr.Val)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return urls
}

// normalize resolves a raw candidate against the base URL and applies the
// same-host and validity filters. It returns the absolute URL string and
// whether the candidate survived.
func (e *Extractor) normalize(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || candidate == "#" {
		return "", false
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(candidate), scheme) {
			return "", false
		}
	}

	u, err := url.Parse(candidate)
	if err != nil {
		// ParseError: malformed candidates are dropped silently, not
		// recorded as crawl errors.
		return "", false
	}

	resolved := e.base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if !strings.EqualFold(resolved.Hostname(), e.base.Hostname()) {
		return "", false
	}

	path := resolved.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !IsValidPath(path) || !IsValidPath(resolved.Path) {
		return "", false
	}

	resolved.Fragment = ""
	return resolved.String(), true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
