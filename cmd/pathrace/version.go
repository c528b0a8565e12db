package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathrace"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pathrace",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pathrace version %s\n", strings.TrimSpace(pathrace.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
