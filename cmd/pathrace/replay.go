package main

import (
	"github.com/aretw0/pathrace/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Animate a comparison in the terminal",
	Long:  `Plays the recorded searches side by side until every algorithm has finished. Ctrl+C stops early.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunReplay(ctx, app, cmd.OutOrStdout(), requestOptions(cmd), playOptions(cmd))
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Step through a comparison interactively",
	Long: `Opens a full-screen viewer.

Keys: space play/pause, left/right step, home/end jump, +/- speed, r reset, q quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunView(ctx, app, requestOptions(cmd), playOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd, viewCmd)
	for _, c := range []*cobra.Command{replayCmd, viewCmd} {
		addRequestFlags(c)
		addPlayFlags(c)
	}
}
