package cmd

import (
	"fmt"
	"orderenhancer/config"
	"orderenhancer/importer"
	"orderenhancer/storage"

	"github.com/spf13/cobra"
)

var (
	fieldsInput  string
	fieldsDBPath string
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage stored checkout custom fields",
	Long: `Checkout custom fields are looked up during export when the order export itself
does not carry them:
- custom_field_1: alternative phone number
- custom_field_2: order comment`,
}

var fieldsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import checkout custom fields from CSV into the local SQLite database",
	Long: `Import checkout custom fields from a CSV file.

Expected columns: order_ref, name, billing_value, shipping_value.
Rows without an order reference or field name are skipped. Values already stored
for the same order and field name are replaced. During export the shipping value
is preferred over the billing value.`,
	Example: `
  # Import custom fields into the configured database
  orderenhancer fields import -i ./custom-fields.csv

  # Import into a specific database
  orderenhancer fields import -i ./custom-fields.csv --db ./orders.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := importer.ImportCustomFields(fieldsInput)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(firstNonEmpty(fieldsDBPath, cfg.Storage.DB))
		if err != nil {
			return err
		}
		defer store.Close()

		stored, err := store.UpsertCustomFields(result.Fields)
		if err != nil {
			return err
		}
		total, err := store.CountCustomFields()
		if err != nil {
			return err
		}

		fmt.Printf(
			"Import completed. Rows read: %d, Rows mapped: %d, Rows skipped: %d, Fields stored: %d, Fields total: %d\n",
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			stored,
			total,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.AddCommand(fieldsImportCmd)

	fieldsImportCmd.Flags().StringVarP(&fieldsInput, "input", "i", "", "Custom field CSV file")
	fieldsImportCmd.Flags().StringVar(&fieldsDBPath, "db", "", "Path to local SQLite database (default from config storage.db)")

	_ = fieldsImportCmd.MarkFlagRequired("input")
}
