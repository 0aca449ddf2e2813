package report

import (
	"io"

	"github.com/migtools/siteaudit/internal/model"
)

// Writer renders a crawl result to some destination.
//
// Design decision: We use an interface so the CLI can pick text, JSON, or
// Markdown output with the same call site, and tests can render into
// buffers.
type Writer interface {
	// Write renders the result. Returns the number of bytes written.
	Write(result *model.CrawlResult) (int, error)
}

// baseWriter carries the shared output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
