package redirect

import (
	"strings"
	"testing"

	"github.com/migtools/siteaudit/internal/model"
)

func TestReadChecks(t *testing.T) {
	t.Parallel()

	t.Run("parses rows and skips the header", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"old,new",
			"https://example.com/a,https://example.com/b",
			"example.com/c,/d",
			"",
		}, "\n")

		checks, err := ReadChecks(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(checks) != 2 {
			t.Fatalf("expected 2 checks, got %d", len(checks))
		}
		if checks[0].OldURL != "https://example.com/a" || checks[0].ExpectedURL != "https://example.com/b" {
			t.Errorf("unexpected first check: %+v", checks[0])
		}
		// A schemeless old URL gets https:// prepended; the expectation is
		// kept verbatim so bare paths still compare correctly.
		if checks[1].OldURL != "https://example.com/c" {
			t.Errorf("expected scheme prepended, got %q", checks[1].OldURL)
		}
		if checks[1].ExpectedURL != "/d" {
			t.Errorf("expected bare-path destination kept, got %q", checks[1].ExpectedURL)
		}
	})

	t.Run("tolerates extra columns", func(t *testing.T) {
		t.Parallel()

		input := "https://example.com/a,/b,some note,another\n"
		checks, err := ReadChecks(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(checks) != 1 {
			t.Fatalf("expected 1 check, got %d", len(checks))
		}
	})

	t.Run("rejects rows with a single column", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadChecks(strings.NewReader("https://example.com/only\n")); err == nil {
			t.Error("expected an error for a one-column row")
		}
	})
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	results := []model.RedirectResult{
		{
			Check:      model.RedirectCheck{OldURL: "https://example.com/a", ExpectedURL: "/b"},
			ActualURL:  "https://example.com/b",
			StatusCode: 200,
			Hops:       1,
			Outcome:    model.RedirectOK,
		},
		{
			Check:   model.RedirectCheck{OldURL: "https://example.com/x", ExpectedURL: "/y"},
			Outcome: model.RedirectError,
			Err:     "connection refused",
		},
	}

	var sb strings.Builder
	if err := WriteResults(&sb, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "old,expected,actual,status,hops,result,error" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "ok") {
		t.Errorf("first row missing outcome: %q", lines[1])
	}
	if !strings.Contains(lines[2], "connection refused") {
		t.Errorf("second row missing error message: %q", lines[2])
	}
}
