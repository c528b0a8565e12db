package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/pathrace/internal/cli"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/render"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathrace",
	Short: "Pathrace races grid pathfinding algorithms side by side",
	Long: `Pathrace runs Dijkstra and A* on the same grid, records every step of
their searches and replays them in lockstep, in the terminal or over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		render.Banner(cmd.OutOrStdout())
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input and 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrInvalidGrid) {
		return 2
	}
	return 1
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "pathrace.yaml", "Config file; a missing file means defaults")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// newApp builds the shared application state from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewApp(path, debug)
}
