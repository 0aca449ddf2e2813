package model

import "time"

// RunRecord summarizes one completed tool invocation for the local run
// history. It stores counts, not content: the history answers "what did I
// audit and when", while the per-run output files hold the detail.
type RunRecord struct {
	// ID is the database-assigned row identifier.
	ID int64

	// Tool is the subcommand that produced the run ("crawl", "redirects",
	// "sitemap", "seo").
	Tool string

	// Target is the seed URL, mapping file, or URL list the run operated on.
	Target string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration

	// PagesProcessed is the number of URLs fetched.
	PagesProcessed int

	// URLsDiscovered is the number of distinct URLs or pathnames produced.
	URLsDiscovered int

	// ErrorCount is the number of per-URL errors recorded.
	ErrorCount int
}
