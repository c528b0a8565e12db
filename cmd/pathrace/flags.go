package main

import (
	"github.com/aretw0/pathrace/internal/cli"
	"github.com/aretw0/pathrace/internal/config"
	"github.com/spf13/cobra"
)

// addRequestFlags registers the flags that describe one comparison.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("preset", "", "Start from a named preset (see 'pathrace presets')")
	f.Int("width", config.DefaultGridSize, "Grid width")
	f.Int("height", config.DefaultGridSize, "Grid height")
	f.String("start", "0,0", "Start cell as row,col")
	f.String("end", "", "End cell as row,col (default: bottom-right corner)")
	f.String("obstacles", "", "Obstacle cells as r,c;r,c;...")
	f.Bool("diagonal", false, "Allow diagonal moves")
	f.Float64("density", 0, "Fraction of cells to block at random (0 disables)")
	f.Uint64("seed", 0, "Seed for random obstacles")
	f.StringSlice("algorithms", nil, "Algorithms to run, e.g. Dijkstra,AStar:euclidean")
}

// addPlayFlags registers the animation flags.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("interval", 0, "Time between ticks (default from config)")
	cmd.Flags().Int("speed", 0, "Steps per tick (default from config)")
}

func requestOptions(cmd *cobra.Command) cli.RequestOptions {
	f := cmd.Flags()
	opts := cli.RequestOptions{Changed: f.Changed}
	opts.Preset, _ = f.GetString("preset")
	opts.Width, _ = f.GetInt("width")
	opts.Height, _ = f.GetInt("height")
	opts.Start, _ = f.GetString("start")
	opts.End, _ = f.GetString("end")
	opts.Obstacles, _ = f.GetString("obstacles")
	opts.Diagonal, _ = f.GetBool("diagonal")
	opts.Density, _ = f.GetFloat64("density")
	opts.Seed, _ = f.GetUint64("seed")
	opts.Algorithms, _ = f.GetStringSlice("algorithms")
	return opts
}

func playOptions(cmd *cobra.Command) cli.PlayOptions {
	var p cli.PlayOptions
	p.Interval, _ = cmd.Flags().GetDuration("interval")
	p.Speed, _ = cmd.Flags().GetInt("speed")
	return p
}
