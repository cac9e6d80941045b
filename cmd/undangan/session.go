package main

import (
	"github.com/spf13/cobra"

	"github.com/sulaimaniyah/undangan/internal/cli"
	"github.com/sulaimaniyah/undangan/internal/presentation/tui"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored guest sessions",
	Long:  `List, inspect, and remove guest sessions held by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := cli.OpenStore(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.ListSessions(cmd.Context(), store, cmd.OutOrStdout())
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		store, closeStore, err := cli.OpenStore(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer closeStore()

		var render func(string) (string, error)
		if format == cli.FormatMarkdown {
			if render, err = tui.NewRenderer(0); err != nil {
				return err
			}
		}
		return cli.InspectSession(cmd.Context(), store, args[0], format, render, cmd.OutOrStdout())
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := cli.OpenStore(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.RemoveSessions(cmd.Context(), store, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd)
	sessionInspectCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json, markdown or mermaid")
}
