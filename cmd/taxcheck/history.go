package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"misp-hq/taxcheck/pkg/cli"
	"misp-hq/taxcheck/pkg/history"
)

var historyFlags struct {
	file   string
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded check runs",
	Long: `List check runs recorded in the history store, newest first.

Runs are recorded when history.enabled is set in the configuration. The
store is read from history.backend and history.path.

Examples:
  # Last 20 runs
  taxcheck history

  # Runs of one file
  taxcheck history --file taxonomies/tlp/machinetag.json

  # JSON output for scripts
  taxcheck history --limit 100 --format json`,
	Args: cobra.NoArgs,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFlags.file, "file", "f", "", "only show runs of this file")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max results (0 for all)")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func showHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}
	if historyFlags.limit < 0 {
		return cli.NewConfigError("limit", "must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), history.Query{
		File:  historyFlags.file,
		Limit: historyFlags.limit,
	})
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if records == nil {
			records = []*history.Record{}
		}
		return (&cli.JSONFormatter{Indent: true}).FormatTo(out, records)
	}
	return outputHistoryText(out, records)
}

func outputHistoryText(out io.Writer, records []*history.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No records found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECKED AT\tFILE\tVERDICT\tFAILED CHECK\tERRORS\tWARNINGS\tDURATION")
	for _, rec := range records {
		verdict := "valid"
		failed := "-"
		if !rec.Valid {
			verdict = "invalid"
			failed = rec.FailedCheck
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			rec.CheckedAt.Local().Format(time.RFC3339),
			rec.File,
			verdict,
			failed,
			rec.Errors,
			rec.Warnings,
			rec.Duration.Round(time.Microsecond),
		)
	}
	return w.Flush()
}
