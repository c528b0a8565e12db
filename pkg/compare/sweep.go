package compare

import (
	"context"
	"fmt"

	"github.com/aretw0/pathrace/pkg/domain"
)

// Sweep defaults: two square grids, three obstacle densities.
var (
	DefaultSweepSizes     = []int{20, 50}
	DefaultSweepDensities = []float64{0.1, 0.3, 0.5}
)

// Sweep benchmarks algorithms over every size x density combination. Each
// grid is size x size with random obstacles drawn from seed, searched from
// the top-left to the bottom-right corner. Runs skip step snapshots.
//
// A grid that fails validation aborts the sweep; so does ctx.
func (c *Comparator) Sweep(ctx context.Context, sizes []int, densities []float64, algorithms []string, seed uint64) (*domain.SweepResult, error) {
	if len(sizes) == 0 {
		return nil, &domain.InvalidRequestError{Field: "sizes", Reason: "at least one size is required"}
	}
	if len(densities) == 0 {
		return nil, &domain.InvalidRequestError{Field: "densities", Reason: "at least one density is required"}
	}
	algos, err := domain.ParseAlgorithms(algorithms)
	if err != nil {
		return nil, err
	}

	out := &domain.SweepResult{
		Sizes:      append([]int(nil), sizes...),
		Densities:  append([]float64(nil), densities...),
		Seed:       seed,
		Algorithms: make([]domain.SweepAggregate, len(algos)),
	}
	names := make([]string, len(algos))
	for i, algo := range algos {
		names[i] = algo.Name()
		out.Algorithms[i].Algorithm = names[i]
	}

	lean := c.With(WithoutSteps())
	for _, size := range sizes {
		for _, density := range densities {
			d := density
			req := domain.ComparisonRequest{
				Width:      size,
				Height:     size,
				Start:      domain.C(0, 0),
				End:        domain.C(size-1, size-1),
				Density:    &d,
				Seed:       seed,
				Algorithms: names,
			}
			res, err := lean.Compare(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("sweep %dx%d at density %.2f: %w", size, size, density, err)
			}
			for i, a := range res.Algorithms {
				agg := &out.Algorithms[i]
				agg.Cases = append(agg.Cases, domain.SweepRun{
					Size:    size,
					Density: density,
					Metrics: a.Metrics,
					Error:   a.Error,
				})
			}
			c.logger.Debug("sweep case finished", "size", size, "density", density)
		}
	}

	for i := range out.Algorithms {
		aggregate(&out.Algorithms[i])
	}
	return out, nil
}

func aggregate(agg *domain.SweepAggregate) {
	agg.Runs = len(agg.Cases)
	if agg.Runs == 0 {
		return
	}
	var found int
	for _, r := range agg.Cases {
		agg.AvgTime += r.Metrics.ExecutionTime
		agg.AvgVisited += float64(r.Metrics.NodesVisited)
		agg.AvgPathLength += float64(r.Metrics.PathLength)
		if r.Metrics.PathFound {
			found++
		}
	}
	n := float64(agg.Runs)
	agg.AvgTime /= n
	agg.AvgVisited /= n
	agg.AvgPathLength /= n
	agg.SuccessRate = float64(found) / n
}
