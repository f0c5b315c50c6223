/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"os"

	"github.com/spf13/cobra"
	"orderenhancer/config"
	"orderenhancer/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orderenhancer",
	Short: "Reconcile, consolidate, and re-serialize e-commerce order exports.",
	Long: `
**********************************************
*            ORDER ENHANCER                  *
**********************************************

This CLI reads order grid exports (CSV, Excel), maps their columns onto a canonical
schema, merges multi-row orders into one line per order, and writes robust CSV or
Excel output. Export runs are recorded in a local SQLite database.

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv (UTF-8, UTF-16 with BOM, or legacy single-byte charsets)
`,
	Example: `
  # Create configuration file
  orderenhancer config create

  # Check feature flags and the active column schema
  orderenhancer validate-config

  # Enhance an order export
  orderenhancer export -i ./orders.csv -o ./orders-enhanced.csv

  # Write Excel output without consolidation
  orderenhancer export -i ./orders.csv -o ./orders.xlsx --consolidate off

  # Load checkout custom fields used as fallback values
  orderenhancer fields import -i ./custom-fields.csv

  # List recorded export runs
  orderenhancer history
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.orderenhancer.yaml, then ./.orderenhancer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug|info|warn|error")
	_ = viper.BindPFlag(config.KeyLoggingLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".orderenhancer" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".orderenhancer")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Using defaults; create one with: orderenhancer config create")
	}

	logging.Setup(os.Stderr, viper.GetString(config.KeyLoggingLevel), viper.GetString(config.KeyLoggingFormat))
}
