package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage orderenhancer configuration file values.",
	Long: `Create, edit, display, and delete the orderenhancer configuration file.

The configuration stores the export feature flags and defaults:
- export.enabled / export.consolidate_orders
- export.schema / export.schemas_file
- export.date_format / export.fallback_charset / export.format
- customer.name_priority
- logging.level / logging.format
- storage.db`,
	Example: `
  # Create default config in $HOME/.orderenhancer.yaml
  orderenhancer config create

  # Show active config and source file
  orderenhancer config show

  # Open active config in editor (creates example if missing)
  orderenhancer config edit

  # Delete active config file
  orderenhancer config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
