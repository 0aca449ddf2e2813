package seo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/migtools/siteaudit/internal/fetch"
	"github.com/migtools/siteaudit/internal/model"
)

// Auditor runs SEO checks against a list of page URLs.
type Auditor struct {
	fetcher *fetch.Retrier
	logger  *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Auditor that fetches through the given retrier.
func New(fetcher *fetch.Retrier, opts ...Option) *Auditor {
	a := &Auditor{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run audits each URL in order and returns one check row per URL that could
// be fetched. URLs whose fetch fails after retries are skipped with a log
// line, matching how a spreadsheet-bound audit treats dead rows.
func (a *Auditor) Run(ctx context.Context, urls []string) ([]model.SEOCheck, error) {
	checks := make([]model.SEOCheck, 0, len(urls))

	for _, pageURL := range urls {
		select {
		case <-ctx.Done():
			return checks, ctx.Err()
		default:
		}

		page, err := a.fetcher.Get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return checks, ctx.Err()
			}
			a.logger.Warn("page unreachable, skipping", "url", pageURL, "error", err)
			continue
		}

		check := Inspect(page)
		checks = append(checks, check)

		a.logger.Info("page audited",
			"url", pageURL,
			"status", check.StatusCode,
			"h1", check.H1Count,
		)
	}

	return checks, nil
}

// Inspect runs all SEO checks against a fetched page.
func Inspect(page *model.Page) model.SEOCheck {
	check := model.SEOCheck{
		URL:        page.URL,
		StatusCode: page.StatusCode,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		// An unparseable body still yields a row with the status code.
		return check
	}

	check.Title = strings.TrimSpace(doc.Find("title").First().Text())
	check.MetaDescription = strings.TrimSpace(
		doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))

	check.H1Count = doc.Find("h1").Length()

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		check.ImgTotal++
		if alt, _ := img.Attr("alt"); strings.TrimSpace(alt) == "" {
			check.ImgAltMissing++
		}
	})

	check.HasCanonical = doc.Find(`link[rel="canonical"]`).Length() > 0
	check.HasOGTitle = doc.Find(`meta[property="og:title"]`).Length() > 0
	check.HasOGDescription = doc.Find(`meta[property="og:description"]`).Length() > 0
	check.HasOGImage = doc.Find(`meta[property="og:image"]`).Length() > 0

	return check
}
