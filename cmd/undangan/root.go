package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sulaimaniyah/undangan/internal/cli"
	"github.com/sulaimaniyah/undangan/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "undangan",
	Short: "Undangan serves a personalised digital invitation with RSVP",
	Long: `Undangan serves an event invitation addressed to each guest by name,
collects attendance confirmations and thanks every guest with a short message.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func globalOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ConfigPath: path, LogLevel: level, LogFormat: format, Debug: debug}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level=debug")
}
