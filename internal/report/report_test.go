package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/migtools/siteaudit/internal/model"
)

func sampleResult() *model.CrawlResult {
	return &model.CrawlResult{
		Seed: "https://example.com",
		URLs: []string{
			"https://example.com/",
			"https://example.com/about",
		},
		Pathnames:      []string{"/", "/about"},
		PagesProcessed: 2,
		Errors: []model.CrawlError{
			{URL: "https://example.com/broken", Message: "status 500"},
		},
	}
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	n, err := NewTextWriter(&sb).Write(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != sb.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, sb.Len())
	}

	out := sb.String()
	for _, want := range []string{
		"Crawl of https://example.com",
		"pages processed: 2",
		"URLs discovered: 2",
		"https://example.com/broken: status 500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if _, err := NewJSONWriter(&sb).Write(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.CrawlResult
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Seed != "https://example.com" || len(decoded.Pathnames) != 2 {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if _, err := NewMarkdownWriter(&sb).Write(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"# Crawl Report",
		"## Pathnames",
		"## Errors",
		"`https://example.com`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWritePathnameFile(t *testing.T) {
	t.Parallel()

	t.Run("writes one pathname per line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "url.txt")
		written, err := WritePathnameFile(path, []string{"/", "/about"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !written {
			t.Fatal("expected written to be true")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(data) != "/\n/about\n" {
			t.Errorf("unexpected file content %q", string(data))
		}
	})

	t.Run("empty list writes no file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "url.txt")
		written, err := WritePathnameFile(path, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written {
			t.Error("expected written to be false")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file to be created")
		}
	})
}

func TestReadPathnames(t *testing.T) {
	t.Parallel()

	input := "/\n\n  /about  \n/contact\n\n"
	paths, err := ReadPathnames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"/", "/about", "/contact"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestPathDocument(t *testing.T) {
	t.Parallel()

	t.Run("wraps a pathname list with metadata", func(t *testing.T) {
		t.Parallel()

		doc := NewPathDocument("url.txt", []string{"/", "/about"})

		var sb strings.Builder
		if _, err := doc.WriteJSON(&sb); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded PathDocument
		if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Source != "url.txt" || decoded.Count != 2 || len(decoded.Paths) != 2 {
			t.Errorf("round trip lost data: %+v", decoded)
		}
	})

	t.Run("nil paths become an empty array", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		if _, err := NewPathDocument("empty.txt", nil).WriteJSON(&sb); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(sb.String(), `"paths": []`) {
			t.Errorf("expected empty array, got %s", sb.String())
		}
	})
}
