package main

import (
	"github.com/aretw0/pathrace/internal/cli"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run a comparison and print its metrics",
	Long: `Runs every requested algorithm on the same grid and prints a summary.

Examples:
  pathrace compare --preset maze
  pathrace compare --width 20 --height 10 --obstacles "3,3;3,4" --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunCompare(ctx, app, cmd.OutOrStdout(), requestOptions(cmd), format)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addRequestFlags(compareCmd)
	compareCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: table, json or markdown")
}
