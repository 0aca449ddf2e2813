package log

import (
	"log/slog"
	"strings"
	"testing"
)

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantChanged bool
		wantContain string
		wantAbsent  string
	}{
		{
			name:        "token parameter is masked",
			input:       "https://example.com/page?token=abc123&q=hello",
			wantChanged: true,
			wantContain: "token=REDACTED",
			wantAbsent:  "abc123",
		},
		{
			name:        "compound names are caught",
			input:       "https://example.com/cb?access_token=xyz",
			wantChanged: true,
			wantContain: "access_token=REDACTED",
			wantAbsent:  "xyz",
		},
		{
			name:        "case insensitive matching",
			input:       "https://example.com/dl?X-Amz-Signature=deadbeef",
			wantChanged: true,
			wantAbsent:  "deadbeef",
		},
		{
			name:        "harmless parameters pass through",
			input:       "https://example.com/search?q=redirect+audit&page=2",
			wantChanged: false,
		},
		{
			name:        "plain strings pass through",
			input:       "not a url at all",
			wantChanged: false,
		},
		{
			name:        "urls without queries pass through",
			input:       "https://example.com/about",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := RedactURL(tt.input)
			if changed != tt.wantChanged {
				t.Errorf("RedactURL(%q) changed = %v, want %v", tt.input, changed, tt.wantChanged)
			}
			if !tt.wantChanged && got != tt.input {
				t.Errorf("unchanged input was modified: %q -> %q", tt.input, got)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("expected %q in %q", tt.wantContain, got)
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("secret %q survived in %q", tt.wantAbsent, got)
			}
		})
	}
}

func TestURLRedactingHandler(t *testing.T) {
	t.Parallel()

	t.Run("redacts record attributes", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		logger := NewLogger(&sb, slog.LevelInfo)

		logger.Info("fetched", "url", "https://example.com/p?api_key=sekret")

		out := sb.String()
		if strings.Contains(out, "sekret") {
			t.Errorf("secret leaked into log output: %s", out)
		}
		if !strings.Contains(out, "REDACTED") {
			t.Errorf("expected redaction marker in output: %s", out)
		}
	})

	t.Run("redacts WithAttrs attributes", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		logger := NewLogger(&sb, slog.LevelInfo).With(
			"seed", "https://example.com/?session=s3ss10n",
		)

		logger.Info("starting")

		if strings.Contains(sb.String(), "s3ss10n") {
			t.Errorf("secret leaked via WithAttrs: %s", sb.String())
		}
	})

	t.Run("redacts grouped attributes", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		logger := NewLogger(&sb, slog.LevelInfo)

		logger.Info("done", slog.Group("request",
			slog.String("url", "https://example.com/?auth=topsecret"),
		))

		if strings.Contains(sb.String(), "topsecret") {
			t.Errorf("secret leaked inside group: %s", sb.String())
		}
	})

	t.Run("debug records are suppressed at info level", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		logger := NewLogger(&sb, slog.LevelInfo)

		logger.Debug("noise")

		if sb.Len() != 0 {
			t.Errorf("expected no output, got %s", sb.String())
		}
	})
}
