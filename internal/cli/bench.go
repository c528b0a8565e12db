package cli

import (
	"context"
	"io"

	"github.com/aretw0/pathrace/internal/config"
	"github.com/aretw0/pathrace/pkg/render"
)

// BenchOptions describes a benchmark sweep.
type BenchOptions struct {
	Sizes      []int
	Densities  []float64
	Algorithms []string // empty means config.DefaultAlgorithms
	Seed       uint64
}

// RunBench sweeps the algorithms over generated grids and prints the
// averages in format.
func RunBench(ctx context.Context, a *App, w io.Writer, opts BenchOptions, format string) error {
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = config.DefaultAlgorithms
	}
	a.Logger.Info("benchmark started", "sizes", opts.Sizes, "densities", opts.Densities, "algorithms", algorithms)
	res, err := a.Comparator().Sweep(ctx, opts.Sizes, opts.Densities, algorithms, opts.Seed)
	if err != nil {
		return err
	}
	return writeOutput(w, format, render.SweepReport(res), res)
}
