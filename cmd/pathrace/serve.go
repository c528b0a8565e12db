package main

import (
	"fmt"

	"github.com/aretw0/pathrace/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves comparisons, presets and playback sessions as a JSON API, with
live frames over Server-Sent Events and Prometheus metrics on /metrics.

Sessions live in memory unless redis.addr is set in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		addr := app.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		fmt.Fprintf(cmd.ErrOrStderr(), ">>> Serving pathrace on %s\n", addr)
		if err := cli.Serve(ctx, app, addr); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), ">>> Stopped by %v\n", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (default from config)")
}
