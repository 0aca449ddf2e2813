package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/report"
)

// NewToJSONCmd creates the tojson command.
func NewToJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tojson <pathnames.txt>",
		Short: "Convert a pathname list into a JSON document",
		Long: `ToJSON wraps a newline-delimited pathname list in a JSON document
with metadata (source, generation time, count), the format downstream
migration tooling consumes.

Examples:
  siteaudit tojson url.txt
  siteaudit tojson --output paths.json --source example.com url.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runToJSONCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output JSON file (default: input name with .json extension)")
	cmd.Flags().String("source", "",
		"Source label recorded in the document (default: input filename)")

	return cmd
}

// runToJSONCmd executes the tojson command.
func runToJSONCmd(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = jsonName(inputPath)
	}
	if source == "" {
		source = inputPath
	}

	f, err := os.Open(inputPath) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	paths, err := report.ReadPathnames(f)
	f.Close()
	if err != nil {
		return err
	}

	doc := report.NewPathDocument(source, paths)

	out, err := os.Create(outputPath) //nolint:gosec // User-chosen output path is intentional
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if _, err := doc.WriteJSON(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d pathnames to %s\n", doc.Count, outputPath)
	return nil
}

// jsonName swaps a filename's extension for .json.
func jsonName(path string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + ".json"
	}
	return path + ".json"
}
