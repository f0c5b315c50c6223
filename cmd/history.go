package cmd

import (
	"fmt"
	"orderenhancer/config"
	"orderenhancer/output"
	"orderenhancer/storage"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyDBPath string
	historyLimit  int
	historyOutput string
	historyFormat string
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded export runs",
	Long: `List export runs recorded in the local SQLite database, newest first.

Each run stores its source and output file, schema, mode, and the row statistics
(original rows, processed rows, skipped rows, consolidation ratio).
Use --output to write the history as CSV or Excel, or --clear to remove it.`,
	Example: `
  # Show the last 10 runs
  orderenhancer history --limit 10

  # Write the full history to Excel
  orderenhancer history -o ./runs.xlsx

  # Remove all recorded runs
  orderenhancer history --clear
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(firstNonEmpty(historyDBPath, cfg.Storage.DB))
		if err != nil {
			return err
		}
		defer store.Close()

		if historyClear {
			deleted, err := store.DeleteAllRuns()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d recorded runs.\n", deleted)
			return nil
		}

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}

		if strings.TrimSpace(historyOutput) != "" {
			format := resolveOutputFormat(historyFormat, historyOutput, cfg.Export.Format)
			if err := output.WriteRunHistory(historyOutput, format, runs); err != nil {
				return err
			}
			fmt.Printf("History written. Runs: %d, Format: %s, File: %s\n", len(runs), format, historyOutput)
			return nil
		}

		if len(runs) == 0 {
			fmt.Println("No export runs recorded.")
			return nil
		}
		for _, run := range runs {
			fmt.Printf(
				"%s  %s  %s -> %s  schema=%s mode=%s rows=%d orders=%d skipped=%d consolidation=%.2f%% field_errors=%d\n",
				run.Stats.ExportedAt.Format("2006-01-02 15:04:05"),
				run.RunID,
				run.SourceFile,
				run.OutputFile,
				run.Schema,
				run.Mode,
				run.Stats.OriginalRows,
				run.Stats.ProcessedRows,
				run.Stats.SkippedRows,
				run.Stats.ConsolidationRatio,
				run.FieldErrors,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "", "Path to local SQLite database (default from config storage.db)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of runs to show (0 = all)")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Write the history to this file instead of stdout")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded runs")
}
