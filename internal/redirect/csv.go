package redirect

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/migtools/siteaudit/internal/model"
)

// ReadChecks parses a redirect mapping CSV from r. The first two columns are
// the old and new URLs; a header row (detected by an "old"-like first cell)
// is skipped. URLs without a scheme get "https://" prepended, matching the
// seed normalization used elsewhere.
func ReadChecks(r io.Reader) ([]model.RedirectCheck, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate trailing columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse mapping CSV: %w", err)
	}

	checks := make([]model.RedirectCheck, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("mapping CSV row %d: need at least 2 columns, got %d", i+1, len(record))
		}

		oldURL := strings.TrimSpace(record[0])
		newURL := strings.TrimSpace(record[1])
		if oldURL == "" {
			continue
		}
		if i == 0 && isHeaderRow(oldURL) {
			continue
		}

		checks = append(checks, model.RedirectCheck{
			OldURL:      ensureScheme(oldURL),
			ExpectedURL: newURL,
		})
	}
	return checks, nil
}

// WriteResults writes verification results as CSV to w.
func WriteResults(w io.Writer, results []model.RedirectResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"old", "expected", "actual", "status", "hops", "result", "error"}); err != nil {
		return err
	}
	for _, res := range results {
		record := []string{
			res.Check.OldURL,
			res.Check.ExpectedURL,
			res.ActualURL,
			strconv.Itoa(res.StatusCode),
			strconv.Itoa(res.Hops),
			string(res.Outcome),
			res.Err,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// isHeaderRow reports whether a first-column value looks like a header cell
// rather than a URL.
func isHeaderRow(cell string) bool {
	c := strings.ToLower(cell)
	return c == "old" || c == "old_url" || c == "old url" || c == "from" || c == "source"
}

// ensureScheme prepends https:// when a URL has no scheme.
func ensureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}
