package cmd

import (
	"fmt"
	"orderenhancer/config"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configCreateSchema      string
	configCreateConsolidate string
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

The export schema and the order consolidation flag can be seeded with --schema and
--consolidate; every other value keeps its default. The result is validated before
it is written. If a configuration file is already in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.orderenhancer.yaml
  orderenhancer config create

  # Seed the admin grid schema without consolidation
  orderenhancer config create --schema admin_grid --consolidate off
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(configCreateSchema, configCreateConsolidate)
	},
}

func saveDefaultConfig(schemaName, consolidate string) error {
	content, err := renderConfigTemplate(schemaName, consolidate)
	if err != nil {
		return err
	}

	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFile(configPath, content)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	return nil
}

// renderConfigTemplate returns the example template with the export schema
// and consolidation flag replaced. Empty values keep the template defaults.
func renderConfigTemplate(schemaName, consolidate string) (string, error) {
	content := config.ExampleYAML()

	if name := strings.TrimSpace(schemaName); name != "" {
		content = strings.Replace(content, `  schema: "excel_export"`, fmt.Sprintf("  schema: %q", name), 1)
	}

	enabled, err := resolveConsolidateMode(consolidate, true)
	if err != nil {
		return "", err
	}
	content = strings.Replace(content, "  consolidate_orders: true", "  consolidate_orders: "+strconv.FormatBool(enabled), 1)

	if _, err := config.ValidateYAMLContent([]byte(content)); err != nil {
		return "", fmt.Errorf("invalid config seed: %w", err)
	}
	return content, nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVar(&configCreateSchema, "schema", "", "Export schema to seed (excel_export|csv_processor|admin_grid)")
	configCreateCmd.Flags().StringVar(&configCreateConsolidate, "consolidate", "auto", "Order consolidation to seed: auto|on|off")
}
