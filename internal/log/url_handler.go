package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// sensitiveParams contains query parameter names whose values are redacted
// before a URL is logged. Matching is case-insensitive and by substring, so
// "access_token" and "X-Amz-Signature" are both caught.
var sensitiveParams = []string{
	"token",
	"key",
	"sig",
	"signature",
	"password",
	"secret",
	"session",
	"auth",
}

// MaskValue is the string used to replace sensitive query values.
const MaskValue = "REDACTED"

// URLRedactingHandler wraps an slog.Handler and redacts sensitive query
// parameter values in any string attribute that parses as a URL.
//
// Design decision: We use a handler wrapper rather than sanitizing at each
// call site because:
//  1. It integrates with standard slog APIs and any underlying handler
//  2. Call sites cannot forget to sanitize
//  3. The URL parse cost is paid only for records that are actually emitted
type URLRedactingHandler struct {
	handler slog.Handler
}

// NewURLRedactingHandler creates a handler wrapping the given one.
// If handler is nil, slog.Default().Handler() is used.
func NewURLRedactingHandler(handler slog.Handler) *URLRedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &URLRedactingHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *URLRedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it on.
func (h *URLRedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added,
// redacted first.
func (h *URLRedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &URLRedactingHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *URLRedactingHandler) WithGroup(name string) slog.Handler {
	return &URLRedactingHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr redacts a single attribute, recursively handling groups.
func (h *URLRedactingHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redacted[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if a.Value.Kind() == slog.KindString {
		if cleaned, changed := RedactURL(a.Value.String()); changed {
			return slog.String(a.Key, cleaned)
		}
	}
	return a
}

// RedactURL replaces sensitive query parameter values in a URL string.
// The second return value reports whether anything was changed. Strings
// that do not look like URLs are returned unchanged.
func RedactURL(s string) (string, bool) {
	if !strings.Contains(s, "://") || !strings.Contains(s, "=") {
		return s, false
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s, false
	}

	query := u.Query()
	changed := false
	for name := range query {
		if isSensitiveParam(name) {
			query.Set(name, MaskValue)
			changed = true
		}
	}
	if !changed {
		return s, false
	}

	u.RawQuery = query.Encode()
	return u.String(), true
}

// isSensitiveParam reports whether a query parameter name looks
// credential-bearing.
func isSensitiveParam(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range sensitiveParams {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// NewLogger creates a slog.Logger that writes redacted text records to w at
// the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewURLRedactingHandler(inner))
}
