// Package commands implements the CLI commands for xmlwash.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "xmlwash",
	Short: "Clear known sentinel values from batches of XML documents",
	Long: `Xmlwash reads XML files whose encoding may be unknown or mis-declared,
resolves their content to text, and empties the Code and Description
fields of every PositionStatus block that hold the values "6A" and
"Ouvriers". Every cleared field is counted.

Examples:
  # Clean files in place next to the originals (<name>_cleaned.xml)
  xmlwash clean export1.xml export2.xml

  # Write cleaned files into a directory
  xmlwash clean -o cleaned/ *.xml

  # Package everything into a zip and export a run report
  xmlwash clean --zip --report report.json *.xml`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.xmlwash.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
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
		viper.SetConfigName(".xmlwash")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("XMLWASH")
	viper.AutomaticEnv()

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
