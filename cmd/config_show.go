package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"orderenhancer/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  orderenhancer config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("%s: %t\n", config.KeyExportEnabled, cfg.Export.Enabled)
		fmt.Printf("%s: %t\n", config.KeyExportConsolidateOrders, cfg.Export.ConsolidateOrders)
		fmt.Printf("%s: %s\n", config.KeyExportSchema, cfg.Export.Schema)
		fmt.Printf("%s: %s\n", config.KeyExportSchemasFile, cfg.Export.SchemasFile)
		fmt.Printf("%s: %s\n", config.KeyExportDateFormat, cfg.Export.DateFormat)
		fmt.Printf("%s: %s\n", config.KeyExportFallbackCharset, cfg.Export.FallbackCharset)
		fmt.Printf("%s: %s\n", config.KeyExportFormat, cfg.Export.Format)
		fmt.Printf("%s: %s\n", config.KeyCustomerNamePriority, cfg.Customer.NamePriority)
		fmt.Printf("%s: %s\n", config.KeyLoggingLevel, cfg.Logging.Level)
		fmt.Printf("%s: %s\n", config.KeyLoggingFormat, cfg.Logging.Format)
		fmt.Printf("%s: %s\n", config.KeyStorageDB, cfg.Storage.DB)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
