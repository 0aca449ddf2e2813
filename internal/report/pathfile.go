package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WritePathnameFile writes pathnames, one per line, to path. When the list
// is empty no file is created and written is false, so callers can report
// "no URLs discovered" instead of leaving an empty file behind.
func WritePathnameFile(path string, pathnames []string) (written bool, err error) {
	if len(pathnames) == 0 {
		return false, nil
	}

	f, err := os.Create(path) //nolint:gosec // User-chosen output path is intentional
	if err != nil {
		return false, fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, p := range pathnames {
		if _, err := w.WriteString(p + "\n"); err != nil {
			return false, err
		}
	}
	if err := w.Flush(); err != nil {
		return false, err
	}
	return true, nil
}

// ReadPathnames reads a newline-delimited pathname list, skipping blank
// lines and trimming surrounding whitespace.
func ReadPathnames(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
