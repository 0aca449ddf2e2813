// Package sitemap harvests canonical site pathnames from robots.txt and
// XML sitemap trees.
//
// The harvester reads robots.txt for Sitemap directives, falling back to
// the conventional /sitemap.xml when none are declared, then walks the
// sitemap and sitemap-index tree breadth-first. A visited set and a depth
// cap keep malicious or accidental index cycles from recursing forever.
// Gzip-compressed sitemaps are decompressed transparently.
package sitemap
