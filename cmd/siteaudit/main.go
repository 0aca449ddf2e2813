// Package main provides the entry point for the siteaudit CLI.
//
// siteaudit is a set of URL auditing and harvesting utilities for website
// migration QA: a same-domain link crawler, a redirect auditor, a sitemap
// harvester, a pathname-to-JSON converter, and a per-page SEO checker.
//
// Usage:
//
//	siteaudit crawl <url>
//	siteaudit redirects <mapping.csv>
//	siteaudit sitemap <url>
//	siteaudit tojson <pathnames.txt>
//	siteaudit seo <url|url-list-file>
//
// See --help for all available options.
package main

// main is the entry point for siteaudit.
func main() {
	Execute()
}
