// Package seo audits individual pages for the metadata that matters after
// a site migration: titles, meta descriptions, heading structure, image alt
// coverage, canonical links, and OpenGraph tags.
//
// Pages are fetched through the retrying fetcher because SEO audits run
// over fixed URL lists where a dropped row is worse than a slow run; a
// throttling server (429/503) is waited out rather than recorded as a
// failure.
package seo
