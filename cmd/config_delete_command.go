package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"orderenhancer/config"
	"os"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by orderenhancer.

Only the configuration file is removed. The SQLite database configured in storage.db
(export run history and custom fields) is kept; use "orderenhancer delete" for it.
If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  orderenhancer config delete

  # Delete config at a custom path
  orderenhancer --configFile ./custom-orderenhancer.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		dbPath := viper.GetString(config.KeyStorageDB)

		if err := removeConfigFile(configPath); err != nil {
			return err
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		if _, err := os.Stat(dbPath); err == nil {
			fmt.Printf("Database kept at: %s (remove it with: orderenhancer delete --db %s)\n", dbPath, dbPath)
		}
		return nil
	},
}

func removeConfigFile(path string) error {
	if path == "" {
		return fmt.Errorf("no configuration file found")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error deleting configuration file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("configuration path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error deleting configuration file: %w", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
