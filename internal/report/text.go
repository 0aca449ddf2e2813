package report

import (
	"fmt"
	"io"

	"github.com/migtools/siteaudit/internal/model"
)

// TextWriter renders a human-readable crawl summary. This is the default
// output format.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the crawl summary.
func (w *TextWriter) Write(result *model.CrawlResult) (int, error) {
	var total int

	n, err := fmt.Fprintf(w.output, "Crawl of %s\n", result.Seed)
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w.output,
		"  pages processed: %d\n  URLs discovered: %d\n  pathnames:       %d\n  errors:          %d\n",
		result.PagesProcessed, result.Discovered(), len(result.Pathnames), len(result.Errors))
	total += n
	if err != nil {
		return total, err
	}

	if len(result.Errors) > 0 {
		n, err = fmt.Fprintln(w.output, "\nErrors:")
		total += n
		if err != nil {
			return total, err
		}
		for _, e := range result.Errors {
			n, err = fmt.Fprintf(w.output, "  %s: %s\n", e.URL, e.Message)
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	return total, nil
}
