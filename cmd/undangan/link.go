package main

import (
	"github.com/spf13/cobra"

	"github.com/sulaimaniyah/undangan/internal/cli"
)

var linkCmd = &cobra.Command{
	Use:     "link <base-url>",
	Short:   "Print a personalised invitation link",
	Example: `  undangan link https://undangan.example --name "Budi Santoso" --title "Ketua RT 05"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		title, _ := cmd.Flags().GetString("title")
		return cli.Link(args[0], name, title, cmd.OutOrStdout())
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [query]",
	Short: "Render the invitation in the terminal",
	Long:  `Renders the invitation pages as they would appear for a link with the given query, e.g. "name=Budi&title=Ketua".`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		cfg, err := cli.LoadConfig(globalOptions(cmd))
		if err != nil {
			return err
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return cli.Preview(cfg.Content.Path, query, raw, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(linkCmd, previewCmd)
	linkCmd.Flags().String("name", "", "Guest name")
	linkCmd.Flags().String("title", "", "Guest title or role")
	previewCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
