package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sulaimaniyah/undangan"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of undangan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "undangan version %s\n", undangan.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
