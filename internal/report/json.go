package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/migtools/siteaudit/internal/model"
)

// JSONWriter renders a crawl result as indented JSON.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the result as JSON.
func (w *JSONWriter) Write(result *model.CrawlResult) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return 0, err
	}
	n, err := w.output.Write(buf.Bytes())
	return n, err
}
