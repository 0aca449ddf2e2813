package report

import (
	"bytes"
	"encoding/json"
	"io"
	"time"
)

// PathDocument wraps a flat pathname list in a JSON document with metadata,
// the exchange format downstream migration tooling consumes.
type PathDocument struct {
	// Source identifies where the pathnames came from (a seed URL or the
	// input filename).
	Source string `json:"source"`

	// GeneratedAt is when the document was produced.
	GeneratedAt time.Time `json:"generatedAt"`

	// Count is the number of pathnames.
	Count int `json:"count"`

	// Paths is the pathname list.
	Paths []string `json:"paths"`
}

// NewPathDocument builds a PathDocument from a pathname list.
func NewPathDocument(source string, paths []string) *PathDocument {
	if paths == nil {
		paths = []string{}
	}
	return &PathDocument{
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Count:       len(paths),
		Paths:       paths,
	}
}

// WriteJSON writes the document as indented JSON.
func (d *PathDocument) WriteJSON(w io.Writer) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return 0, err
	}
	return w.Write(buf.Bytes())
}
