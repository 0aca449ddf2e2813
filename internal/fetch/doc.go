// Package fetch provides the HTTP client used by the audit tools.
//
// Two fetch modes exist. Client performs single-shot GETs: the crawler has
// no retry policy, so a failed fetch is terminal for that URL within a
// crawl. Retrier wraps Client with bounded exponential backoff and
// Retry-After handling for the SEO auditor, which visits a fixed URL list
// and should ride out transient throttling rather than drop rows.
package fetch
