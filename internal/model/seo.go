package model

// SEOCheck holds the per-page results of an SEO audit.
//
// The field set mirrors what site owners verify after a migration: that
// titles, descriptions, canonical links, and OpenGraph tags survived the
// move, and that images kept their alt text.
type SEOCheck struct {
	// URL is the audited page URL.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Title is the <title> text, trimmed.
	Title string

	// MetaDescription is the content of <meta name="description">.
	MetaDescription string

	// H1Count is the number of <h1> elements on the page.
	H1Count int

	// ImgTotal is the number of <img> elements on the page.
	ImgTotal int

	// ImgAltMissing is the number of <img> elements without alt text.
	ImgAltMissing int

	// HasCanonical reports whether a <link rel="canonical"> is present.
	HasCanonical bool

	// HasOGTitle reports whether <meta property="og:title"> is present.
	HasOGTitle bool

	// HasOGDescription reports whether <meta property="og:description">
	// is present.
	HasOGDescription bool

	// HasOGImage reports whether <meta property="og:image"> is present.
	HasOGImage bool
}
