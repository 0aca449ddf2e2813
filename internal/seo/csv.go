package seo

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/migtools/siteaudit/internal/model"
)

// WriteCSV writes SEO check rows as CSV to w.
func WriteCSV(w io.Writer, checks []model.SEOCheck) error {
	writer := csv.NewWriter(w)

	header := []string{
		"url", "status", "title", "meta_description",
		"h1_count", "img_total", "img_alt_missing",
		"canonical", "og_title", "og_description", "og_image",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, c := range checks {
		record := []string{
			c.URL,
			strconv.Itoa(c.StatusCode),
			c.Title,
			c.MetaDescription,
			strconv.Itoa(c.H1Count),
			strconv.Itoa(c.ImgTotal),
			strconv.Itoa(c.ImgAltMissing),
			yesNo(c.HasCanonical),
			yesNo(c.HasOGTitle),
			yesNo(c.HasOGDescription),
			yesNo(c.HasOGImage),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// StampFilename inserts a date stamp before the file extension, so repeated
// audits of the same site produce distinguishable files:
// "audit-seo.csv" + "2026-08-30" -> "audit-seo-2026-08-30.csv".
func StampFilename(path, stamp string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if stem == "" {
		stem = "audit-seo"
	}
	if ext == "" {
		ext = ".csv"
	}
	return stem + "-" + stamp + ext
}

// yesNo renders a boolean check the way the output spreadsheet expects.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
