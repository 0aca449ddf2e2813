package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/migtools/siteaudit/internal/config"
	"github.com/migtools/siteaudit/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past audit runs",
		Long: `History lists recent audit runs recorded in the local database.

Each network-touching subcommand records a summary row (tool, target,
counts, duration) unless run with --no-history.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		fmt.Println("No run history yet.")
		return nil //nolint:nilerr // A missing database just means no runs
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No run history yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTOOL\tTARGET\tPAGES\tFOUND\tERRORS\tTOOK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Tool,
			run.Target,
			run.PagesProcessed,
			run.URLsDiscovered,
			run.ErrorCount,
			run.Duration.Round(time.Millisecond),
		)
	}
	return w.Flush()
}
