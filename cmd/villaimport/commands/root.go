// Package commands implements the CLI commands for villaimport.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "villaimport",
	Short: "Import villa listings with booking-derived revenue reconstruction",
	Long: `Villaimport fetches a villa listing page from an allow-listed source
site, extracts accommodation facts and photo galleries, and replays the
page's pricing calendar against its booked date ranges to reconstruct a
monthly revenue history.

Examples:
  # Import one listing and print the record as JSON
  villaimport import -u "https://www.pattayapartypoolvilla.com/v/2564"

  # Import several listings to a JSONL file
  villaimport import -u URL1 -u URL2 --format jsonl -o villas.jsonl

  # Run the admin API
  villaimport serve --listen :8080`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.villaimport.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".villaimport")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VILLAIMPORT")
	viper.AutomaticEnv()

	_ = viper.BindEnv("database_url", "DATABASE_URL")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
