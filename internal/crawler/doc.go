// Package crawler implements the same-domain link crawler at the heart of
// siteaudit.
//
// # Architecture
//
// The Crawler owns three sets: the frontier (URLs discovered but not yet
// fetched, with their BFS depth), the visited set, and the discovered set
// (every same-host URL that passed validity filtering). The crawl loop is
// sequential across batches but fetches all URLs within a batch
// concurrently, waiting for the whole batch to settle before applying its
// discoveries. Frontier and set mutations happen only between batches, in
// the single control-flow context, so no locking is needed around them.
//
// # Components
//
//   - Crawler: frontier management, batch scheduling, budget enforcement
//   - Extractor: pulls candidate URLs out of fetched HTML
//   - Validity filter: rejects scrape artifacts that are not real paths
//
// # Politeness
//
// Request starts are paced by a rate limiter (default one request per
// 100ms) and every request carries a descriptive User-Agent. The page
// budget is enforced strictly: a batch is never larger than the remaining
// budget, so a crawl stops at exactly the configured maximum.
package crawler
