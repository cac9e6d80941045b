package main

import (
	"github.com/spf13/cobra"

	"github.com/sulaimaniyah/undangan/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the invitation HTTP server",
	Long:  `Serves the invitation pages, RSVP endpoints, health check and metrics until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		quiet, _ := cmd.Flags().GetBool("quiet")
		return cli.Serve(cli.ServeOptions{
			Options: globalOptions(cmd),
			Addr:    addr,
			Quiet:   quiet,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
