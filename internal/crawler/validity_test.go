package crawler

import (
	"strings"
	"testing"
)

// TestIsValidPath tests the scrape-artifact rejection rules.
func TestIsValidPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "root always accepted", path: "/", want: true},
		{name: "normal page", path: "/normal/page.html", want: true},
		{name: "encoded angle bracket", path: "/foo%3Cscript%3E", want: false},
		{name: "encoded angle bracket lowercase", path: "/foo%3cscript%3e", want: false},
		{name: "encoded space", path: "/a%20b", want: false},
		{name: "literal angle brackets", path: "/foo<b>", want: false},
		{name: "attribute soup class", path: "/page/class=nav", want: false},
		{name: "attribute soup id", path: "/id=main", want: false},
		{name: "attribute soup style", path: "/x/style=color", want: false},
		{name: "double percent", path: "/a%%b", want: false},
		{name: "single percent encoding ok", path: "/caf%C3%A9", want: true},
		{name: "too long", path: "/" + strings.Repeat("a", 201), want: false},
		{name: "exactly at limit", path: "/" + strings.Repeat("a", 199), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidPath(tt.path); got != tt.want {
				t.Errorf("IsValidPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// TestIsValidPathDecodedForm verifies the double-percent rule catches
// percent-encoded percent signs once decoded, as in "/a%25%25b".
func TestIsValidPathDecodedForm(t *testing.T) {
	t.Parallel()

	e, err := NewExtractor("https://example.com/")
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}

	if _, ok := e.normalize("/a%25%25b"); ok {
		t.Error("expected /a%25%25b to be rejected after decoding")
	}
	if _, ok := e.normalize("/normal/page.html"); !ok {
		t.Error("expected /normal/page.html to be accepted")
	}
}
