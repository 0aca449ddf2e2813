// Package report renders audit results for humans and files.
//
// Crawl results can be written as a plain-text summary (default), JSON, or
// Markdown. The discovered pathnames themselves go to a newline-delimited
// text sink, and the tojson conversion wraps such a pathname list in a JSON
// document with metadata.
package report
