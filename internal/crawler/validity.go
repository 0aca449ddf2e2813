package crawler

import "strings"

// maxPathLength is the longest path accepted by the validity filter.
// Real site paths rarely approach this; scrape artifacts (concatenated
// markup, inlined JSON) regularly blow past it.
const maxPathLength = 200

// IsValidPath reports whether a candidate path looks like a real site path
// rather than a malformed scrape artifact.
//
// The rules are heuristics tuned against crawled corpora, not a grammar:
// markup fragments leak percent-encoded or literal angle brackets and
// attribute soup (class=, id=, style=), and double-encoded junk shows up as
// consecutive percent signs. The root path is always accepted.
//
// Callers should apply this to both the escaped and decoded forms of a
// path, since artifacts appear in either depending on how the source page
// mangled them.
func IsValidPath(path string) bool {
	if path == "/" {
		return true
	}
	if len(path) > maxPathLength {
		return false
	}

	lower := strings.ToLower(path)
	if strings.Contains(lower, "%3c") || // encoded <
		strings.Contains(lower, "%3e") || // encoded >
		strings.Contains(lower, "%20") { // encoded space
		return false
	}
	if strings.ContainsAny(path, "<>") {
		return false
	}
	if strings.Contains(lower, "class=") ||
		strings.Contains(lower, "id=") ||
		strings.Contains(lower, "style=") {
		return false
	}
	if strings.Contains(path, "%%") {
		return false
	}
	return true
}
