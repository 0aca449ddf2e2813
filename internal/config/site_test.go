package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestForHost(t *testing.T) {
	t.Parallel()

	file := &File{
		Defaults: SiteConfig{
			UserAgent: "default-agent",
			Delay:     Duration{100 * time.Millisecond},
			Headers:   map[string]string{"Accept-Language": "en"},
		},
		Sites: map[string]SiteConfig{
			"staging.example.com": {
				UserAgent: "staging-agent",
				Headers:   map[string]string{"Authorization": "Basic abc"},
				IgnorePatterns: []string{
					"/wp-admin/*",
				},
			},
		},
	}

	t.Run("unknown host gets the defaults", func(t *testing.T) {
		t.Parallel()

		got := file.ForHost("other.example.com")
		if got.UserAgent != "default-agent" {
			t.Errorf("expected default user agent, got %q", got.UserAgent)
		}
		if got.Delay.Duration != 100*time.Millisecond {
			t.Errorf("expected default delay, got %v", got.Delay.Duration)
		}
	})

	t.Run("known host overlays the defaults", func(t *testing.T) {
		t.Parallel()

		got := file.ForHost("staging.example.com")
		if got.UserAgent != "staging-agent" {
			t.Errorf("expected overridden user agent, got %q", got.UserAgent)
		}
		// Unset fields fall back to the defaults.
		if got.Delay.Duration != 100*time.Millisecond {
			t.Errorf("expected inherited delay, got %v", got.Delay.Duration)
		}
		// Headers are merged rather than replaced.
		if got.Headers["Accept-Language"] != "en" || got.Headers["Authorization"] != "Basic abc" {
			t.Errorf("headers not merged: %v", got.Headers)
		}
		if len(got.IgnorePatterns) != 1 {
			t.Errorf("ignore patterns not applied: %v", got.IgnorePatterns)
		}
	})

	t.Run("merging does not mutate the defaults", func(t *testing.T) {
		t.Parallel()

		_ = file.ForHost("staging.example.com")
		if _, ok := file.Defaults.Headers["Authorization"]; ok {
			t.Error("site header leaked into the shared defaults")
		}
	})

	t.Run("nil file yields zero config", func(t *testing.T) {
		t.Parallel()

		var f *File
		if got := f.ForHost("example.com"); got.UserAgent != "" {
			t.Errorf("expected zero config, got %+v", got)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("parses a full config file", func(t *testing.T) {
		t.Parallel()

		content := `
defaults:
  delay: 250ms
  user_agent: "audit-bot"
sites:
  staging.example.com:
    delay: 2
    headers:
      Authorization: "Basic abc"
    ignore_patterns:
      - "/wp-admin/*"
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Defaults.Delay.Duration != 250*time.Millisecond {
			t.Errorf("expected 250ms default delay, got %v", cf.Defaults.Delay.Duration)
		}
		site := cf.Sites["staging.example.com"]
		// Numeric durations are read as seconds.
		if site.Delay.Duration != 2*time.Second {
			t.Errorf("expected 2s site delay, got %v", site.Delay.Duration)
		}
		if site.Headers["Authorization"] != "Basic abc" {
			t.Errorf("headers not parsed: %v", site.Headers)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("defaults: [not a mapping"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}
