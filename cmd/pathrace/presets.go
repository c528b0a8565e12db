package main

import (
	"github.com/aretw0/pathrace/internal/cli"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in and configured presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return cli.ListPresets(cmd.OutOrStdout(), app.Catalog, format)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: table, json or markdown")
}
