package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/migtools/siteaudit/internal/model"
)

// MarkdownWriter renders a crawl result as GitHub Flavored Markdown, for
// pasting into migration tickets and QA documents.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the result as Markdown.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + result.Seed + "`"},
			{"Pages Processed", strconv.Itoa(result.PagesProcessed)},
			{"URLs Discovered", strconv.Itoa(result.Discovered())},
			{"Pathnames", strconv.Itoa(len(result.Pathnames))},
			{"Errors", strconv.Itoa(len(result.Errors))},
		},
	})
	md.PlainText("")

	if len(result.Pathnames) > 0 {
		md.H2("Pathnames")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightNone, strings.Join(result.Pathnames, "\n"))
		md.PlainText("")
	}

	if len(result.Errors) > 0 {
		md.H2("Errors")
		md.PlainText("")
		rows := make([][]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			rows = append(rows, []string{"`" + e.URL + "`", e.Message})
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Error"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
