package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/migtools/siteaudit/internal/report"
)

func TestJSONName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"url.txt", "url.json"},
		{"out/paths.txt", "out/paths.json"},
		{"noext", "noext.json"},
		{".hidden", ".hidden.json"},
	}

	for _, tt := range tests {
		if got := jsonName(tt.path); got != tt.want {
			t.Errorf("jsonName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestToJSONCmd(t *testing.T) {
	t.Parallel()

	t.Run("converts a pathname file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "url.txt")
		output := filepath.Join(dir, "url.json")
		if err := os.WriteFile(input, []byte("/\n/about\n"), 0600); err != nil {
			t.Fatalf("failed to write input: %v", err)
		}

		cmd := NewToJSONCmd()
		cmd.SetArgs([]string{"--output", output, "--source", "example.com", input})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		var doc report.PathDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if doc.Source != "example.com" || doc.Count != 2 {
			t.Errorf("unexpected document: %+v", doc)
		}
	})

	t.Run("missing input is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewToJSONCmd()
		cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.txt")})
		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a missing input file")
		}
	})
}
