package cmd

import (
	"fmt"
	"log/slog"
	"orderenhancer/config"
	"orderenhancer/exporter"
	"orderenhancer/importer"
	"orderenhancer/order"
	"orderenhancer/output"
	"orderenhancer/resolve"
	"orderenhancer/schema"
	"orderenhancer/storage"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportInput        string
	exportInputFormat  string
	exportOutput       string
	exportFormat       string
	exportSchema       string
	exportConsolidate  string
	exportDBPath       string
	exportHistory      bool
	exportCustomFields bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Enhance an order export file and write CSV/Excel output",
	Long: `Read an order export, project its columns onto the selected canonical schema,
consolidate rows belonging to the same order, and write the result.

Column values are resolved with fallbacks: customer names are built from address
fields, phone numbers are cleaned, comments are flattened, and item details are
constructed from product columns. When none of the schema columns match the input
header, the file is only re-encoded and re-quoted.

Alternative phone numbers and order comments missing from the export are looked
up in the custom fields stored with "orderenhancer fields import".

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Enhance a CSV export with the configured schema
  orderenhancer export -i ./orders.csv -o ./orders-enhanced.csv

  # Use the file post-processing schema and Excel output
  orderenhancer export -i ./orders.csv -o ./orders.xlsx --schema csv_processor

  # Keep one output line per input row
  orderenhancer export -i ./orders.xlsx -o ./orders.csv --consolidate off

  # Do not record the run or consult stored custom fields
  orderenhancer export -i ./orders.csv -o ./out.csv --history=false --custom-fields=false
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		consolidate, err := resolveConsolidateMode(exportConsolidate, cfg.Export.ConsolidateOrders)
		if err != nil {
			return err
		}

		format := resolveOutputFormat(exportFormat, exportOutput, cfg.Export.Format)
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		registry, err := cfg.Schemas()
		if err != nil {
			return err
		}
		schemaName := firstNonEmpty(exportSchema, cfg.Export.Schema)
		exportSchemaDef, err := registry.Lookup(schemaName)
		if err != nil {
			return err
		}

		text, err := importer.ReadFile(exportInput, exportInputFormat)
		if err != nil {
			return err
		}

		var (
			store        *storage.SQLiteStore
			customFields resolve.CustomFieldSource
		)
		if exportHistory || exportCustomFields {
			store, err = storage.OpenSQLite(firstNonEmpty(exportDBPath, cfg.Storage.DB))
			if err != nil {
				return err
			}
			defer store.Close()
			if exportCustomFields {
				customFields = store
			}
		}

		opts, err := buildExportOptions(*cfg, exportSchemaDef, consolidate, customFields)
		if err != nil {
			return err
		}

		result, err := exporter.Run(text, opts)
		if err != nil {
			return fmt.Errorf("export %s: %w", exportInput, err)
		}

		if err := writer.Write(exportOutput, result); err != nil {
			return err
		}

		fmt.Printf(
			"Export completed. Mode: %s, Schema: %s, Rows read: %d, Orders written: %d, Rows skipped: %d, Consolidation: %.2f%%, Format: %s, File: %s\n",
			result.Mode,
			exportSchemaDef.Name,
			result.Stats.OriginalRows,
			result.Stats.ProcessedRows,
			result.Stats.SkippedRows,
			result.Stats.ConsolidationRatio,
			format,
			exportOutput,
		)
		for _, fieldErr := range result.FieldErrors {
			fmt.Printf("Warning: %v\n", fieldErr)
		}

		if exportHistory && store != nil {
			run, err := store.InsertRun(order.Run{
				SourceFile:  exportInput,
				OutputFile:  exportOutput,
				Format:      format,
				Schema:      exportSchemaDef.Name,
				Mode:        string(result.Mode),
				FieldErrors: len(result.FieldErrors),
				Stats:       result.Stats,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Run recorded: %s\n", run.RunID)
		}

		return nil
	},
}

// buildExportOptions wires the configured sanitizer, date layout and name
// priority into the exporter. customFields may be nil.
func buildExportOptions(cfg config.Config, s schema.Schema, consolidate bool, customFields resolve.CustomFieldSource) (exporter.Options, error) {
	sanitizer, err := cfg.Sanitizer()
	if err != nil {
		return exporter.Options{}, err
	}
	layout, err := cfg.DateLayout()
	if err != nil {
		return exporter.Options{}, err
	}
	priority, err := cfg.NamePriority()
	if err != nil {
		return exporter.Options{}, err
	}

	resolver := resolve.New(resolve.Options{
		NamePriority: priority,
		DateLayout:   layout,
		CustomFields: customFields,
		Sanitizer:    sanitizer,
	})

	return exporter.Options{
		Enabled:     cfg.Export.Enabled,
		Consolidate: consolidate,
		Schema:      s,
		Resolver:    resolver,
		Sanitizer:   sanitizer,
		Logger:      slog.Default().With("schema", s.Name),
	}, nil
}

func resolveConsolidateMode(mode string, configDefault bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return configDefault, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid consolidate mode %q (supported: auto|on|off)", mode)
	}
}

func resolveOutputFormat(flagValue, path, configDefault string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm":
		return "excel"
	default:
		return configDefault
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Order export file to enhance")
	exportCmd.Flags().StringVar(&exportInputFormat, "input-format", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension, then config)")
	exportCmd.Flags().StringVarP(&exportSchema, "schema", "s", "", "Column schema name (default from config export.schema)")
	exportCmd.Flags().StringVar(&exportConsolidate, "consolidate", "auto", "Order consolidation: auto|on|off")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default from config storage.db)")
	exportCmd.Flags().BoolVar(&exportHistory, "history", true, "Record the run in the export history")
	exportCmd.Flags().BoolVar(&exportCustomFields, "custom-fields", true, "Fill missing alternative phones and comments from stored custom fields")

	_ = exportCmd.MarkFlagRequired("input")
	_ = exportCmd.MarkFlagRequired("output")
}
