// Package log provides a slog.Handler that redacts credentials leaking
// through URLs.
//
// Audit runs log full URLs constantly, and migration targets frequently
// embed signed tokens, session identifiers, or API keys in query strings.
// The handler strips those query parameter values before the record reaches
// the underlying handler, so logs are safe to attach to tickets.
package log
