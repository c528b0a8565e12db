package main

import (
	"github.com/aretw0/pathrace/internal/cli"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the algorithms over random grids",
	Long: `Runs every algorithm on square grids of each size and obstacle density,
then prints the average time, nodes visited, path length and success rate.

Examples:
  pathrace bench
  pathrace bench --sizes 10,30 --densities 0.2 --algorithms Dijkstra,AStar:euclidean --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		f := cmd.Flags()
		var opts cli.BenchOptions
		opts.Sizes, _ = f.GetIntSlice("sizes")
		opts.Densities, _ = f.GetFloat64Slice("densities")
		opts.Algorithms, _ = f.GetStringSlice("algorithms")
		opts.Seed, _ = f.GetUint64("seed")
		format, _ := f.GetString("format")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunBench(ctx, app, cmd.OutOrStdout(), opts, format)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	f := benchCmd.Flags()
	f.IntSlice("sizes", compare.DefaultSweepSizes, "Square grid sizes")
	f.Float64Slice("densities", compare.DefaultSweepDensities, "Obstacle densities in [0, 1]")
	f.StringSlice("algorithms", nil, "Algorithms to run (default Dijkstra,AStar)")
	f.Uint64("seed", 42, "Seed for random obstacles")
	f.StringP("format", "f", cli.FormatTable, "Output format: table, json or markdown")
}
