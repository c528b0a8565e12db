package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/internal/search"
	"github.com/aretw0/pathrace/pkg/domain"
	"golang.org/x/sync/errgroup"
)

type searchFunc func(ctx context.Context, g search.Graph, start, end domain.Coordinate, algo domain.Algorithm) (*search.Trace, error)

// Comparator orchestrates algorithm runs over a shared grid.
type Comparator struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	parallel  int
	skipSteps bool
	now       func() time.Time
	search    searchFunc
}

// New creates a Comparator.
func New(opts ...Option) *Comparator {
	c := &Comparator{
		now:    time.Now,
		search: search.Run,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// With returns a copy of c with opts applied on top of its settings.
func (c *Comparator) With(opts ...Option) *Comparator {
	cp := *c
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// ParseAlgorithm resolves "Dijkstra", "AStar" or "AStar:<heuristic>".
func ParseAlgorithm(name string) (domain.Algorithm, error) {
	return domain.ParseAlgorithm(name)
}

// Compare validates req, then runs every requested algorithm over the
// same grid. The only errors returned after validation are context
// cancellation errors; per-run failures live in AlgorithmResult.Error.
func (c *Comparator) Compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResult, error) {
	grid, err := req.BuildGrid()
	if err != nil {
		return nil, err
	}
	algos, err := domain.ParseAlgorithms(req.Algorithms)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("comparison started",
		"width", grid.Width(), "height", grid.Height(),
		"obstacles", len(grid.Obstacles()), "algorithms", len(algos))

	results := make([]domain.AlgorithmResult, len(algos))
	if c.parallel <= 1 || len(algos) == 1 {
		for i, algo := range algos {
			res, err := c.runOne(ctx, grid, algo)
			if err != nil {
				return nil, fmt.Errorf("compare %s: %w", algo.Name(), err)
			}
			results[i] = res
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.parallel)
		for i, algo := range algos {
			g.Go(func() error {
				res, err := c.runOne(gctx, grid, algo)
				if err != nil {
					return fmt.Errorf("compare %s: %w", algo.Name(), err)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return &domain.ComparisonResult{Grid: grid, Algorithms: results}, nil
}

// runOne executes a single search. It returns an error only when ctx is
// done; every other failure, panics included, is recorded on the result.
func (c *Comparator) runOne(ctx context.Context, grid *domain.Grid, algo domain.Algorithm) (res domain.AlgorithmResult, err error) {
	name := algo.Name()
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if c.hooks.OnSearchStart != nil {
		c.hooks.OnSearchStart(ctx, &domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventSearchStart},
			Algorithm: name,
		})
	}

	var elapsed time.Duration
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("search panicked", "algorithm", name, "panic", r)
			res = failed(name, fmt.Errorf("panic: %v", r))
			err = nil
		}
		if err != nil {
			return
		}
		res.Metrics.ExecutionTime = elapsed.Seconds()
		c.finish(ctx, &res, elapsed)
	}()

	started := c.now()
	trace, runErr := c.search(ctx, grid, grid.Start(), grid.End(), algo)
	elapsed = c.now().Sub(started)

	if runErr != nil {
		if ctx.Err() != nil {
			return res, runErr
		}
		c.logger.Error("search failed", "algorithm", name, "error", runErr)
		return failed(name, runErr), nil
	}

	res = domain.AlgorithmResult{
		Name:    name,
		Metrics: trace.Metrics(),
		Path:    trace.Path(),
	}
	if !c.skipSteps {
		res.Steps = trace.Steps()
	}
	if algo.Kind == domain.KindAStar {
		res.Metrics.Heuristic = algo.Heuristic.String()
	}
	return res, nil
}

func (c *Comparator) finish(ctx context.Context, res *domain.AlgorithmResult, elapsed time.Duration) {
	c.logger.Debug("search finished",
		"algorithm", res.Name,
		"visited", res.Metrics.NodesVisited,
		"path_found", res.Metrics.PathFound,
		"path_length", res.Metrics.PathLength,
		"duration", elapsed)

	if c.hooks.OnSearchFinish == nil {
		return
	}
	evt := &domain.SearchEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventSearchFinish},
		Algorithm: res.Name,
		Duration:  elapsed,
	}
	if res.Failed() {
		evt.Err = errors.New(res.Error)
	} else {
		m := res.Metrics
		evt.Metrics = &m
	}
	c.hooks.OnSearchFinish(ctx, evt)
}

func failed(name string, err error) domain.AlgorithmResult {
	return domain.AlgorithmResult{
		Name:  name,
		Steps: []domain.Step{},
		Error: err.Error(),
	}
}
