package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/pathrace/internal/search"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, w, h int, obstacles []domain.Coordinate, start, end domain.Coordinate, diagonal bool) *domain.Grid {
	t.Helper()
	g, err := domain.NewGrid(w, h, obstacles, start, end, diagonal)
	require.NoError(t, err)
	return g
}

func run(t *testing.T, g *domain.Grid, algo domain.Algorithm) *search.Trace {
	t.Helper()
	tr, err := search.Run(context.Background(), g, g.Start(), g.End(), algo)
	require.NoError(t, err)
	return tr
}

var allAlgorithms = []domain.Algorithm{
	domain.Dijkstra(),
	domain.AStar(domain.HeuristicManhattan),
	domain.AStar(domain.HeuristicEuclidean),
	domain.AStar(domain.HeuristicChebyshev),
}

func TestRun_OpenGrid(t *testing.T) {
	g := mustGrid(t, 5, 5, nil, domain.C(0, 0), domain.C(4, 4), false)

	for _, algo := range []domain.Algorithm{domain.Dijkstra(), domain.AStar(domain.HeuristicManhattan)} {
		t.Run(algo.Name(), func(t *testing.T) {
			tr := run(t, g, algo)
			m := tr.Metrics()

			assert.True(t, m.PathFound)
			assert.Equal(t, 8, m.PathLength)
			assert.Equal(t, 8.0, m.PathCost)

			path := tr.Path()
			require.Len(t, path, 9)
			assert.Equal(t, domain.C(0, 0), path[0])
			assert.Equal(t, domain.C(4, 4), path[len(path)-1])
			for i := 1; i < len(path); i++ {
				dr := path[i].Row - path[i-1].Row
				dc := path[i].Col - path[i-1].Col
				assert.Equal(t, 1, dr*dr+dc*dc, "path must move one orthogonal cell at a time")
			}
		})
	}
}

func TestRun_Walled(t *testing.T) {
	// A full middle column separates the two sides even with diagonal moves.
	wall := []domain.Coordinate{domain.C(0, 1), domain.C(1, 1), domain.C(2, 1)}

	for _, diagonal := range []bool{false, true} {
		g := mustGrid(t, 3, 3, wall, domain.C(0, 0), domain.C(2, 2), diagonal)
		for _, algo := range allAlgorithms {
			t.Run(fmt.Sprintf("%s/diagonal=%v", algo.Name(), diagonal), func(t *testing.T) {
				tr := run(t, g, algo)
				m := tr.Metrics()
				assert.False(t, m.PathFound)
				assert.Zero(t, m.PathLength)
				assert.Nil(t, tr.Path())

				steps := tr.Steps()
				assert.Nil(t, steps[len(steps)-1].Path)
			})
		}
	}
}

func TestRun_StepTrace(t *testing.T) {
	g := mustGrid(t, 6, 6, []domain.Coordinate{domain.C(2, 1), domain.C(2, 2), domain.C(2, 3)}, domain.C(0, 0), domain.C(5, 5), false)

	for _, algo := range allAlgorithms {
		t.Run(algo.Name(), func(t *testing.T) {
			tr := run(t, g, algo)
			steps := tr.Steps()
			require.NotEmpty(t, steps)

			// Initial state: nothing expanded, start waiting in the frontier.
			assert.Empty(t, steps[0].Visited)
			assert.Equal(t, []domain.Coordinate{g.Start()}, steps[0].Frontier)
			assert.Nil(t, steps[0].Path)

			for i := 1; i < len(steps); i++ {
				assert.Len(t, steps[i].Visited, i, "one expansion per step")
				assert.GreaterOrEqual(t, len(steps[i].Visited), len(steps[i-1].Visited))
				assert.Equal(t, steps[i-1].Visited, steps[i].Visited[:i-1], "visited order is append-only")
				for _, f := range steps[i].Frontier {
					assert.NotContains(t, steps[i].Visited, f, "frontier and visited are disjoint")
				}
			}
			for i := 0; i < len(steps)-1; i++ {
				assert.Nil(t, steps[i].Path, "only the terminal step carries a path")
			}

			last := steps[len(steps)-1]
			assert.Equal(t, tr.Metrics().NodesVisited, len(last.Visited))
			assert.Equal(t, tr.Path(), last.Path)
			assert.Equal(t, g.End(), last.Visited[len(last.Visited)-1])
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	density := 0.3
	req := domain.ComparisonRequest{Width: 20, Height: 20, Start: domain.C(0, 0), End: domain.C(19, 19), Density: &density, Seed: 11, AllowDiagonal: true}
	g, err := req.BuildGrid()
	require.NoError(t, err)

	for _, algo := range allAlgorithms {
		a := run(t, g, algo).Steps()
		b := run(t, g, algo).Steps()
		assert.Equal(t, a, b, algo.Name())
	}
}

func TestRun_OptimalityAndEfficiency(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		for _, diagonal := range []bool{false, true} {
			density := 0.25
			req := domain.ComparisonRequest{
				Width: 25, Height: 18,
				Start: domain.C(1, 1), End: domain.C(16, 22),
				Density: &density, Seed: seed, AllowDiagonal: diagonal,
			}
			g, err := req.BuildGrid()
			require.NoError(t, err)

			base := run(t, g, domain.Dijkstra()).Metrics()

			// Heuristics admissible and consistent for the movement model.
			admissible := []domain.Heuristic{domain.HeuristicEuclidean, domain.HeuristicChebyshev}
			if !diagonal {
				admissible = append(admissible, domain.HeuristicManhattan)
			}

			for _, h := range admissible {
				name := fmt.Sprintf("seed=%d/diagonal=%v/%s", seed, diagonal, h)
				m := run(t, g, domain.AStar(h)).Metrics()

				assert.Equal(t, base.PathFound, m.PathFound, name)
				assert.Equal(t, base.PathLength, m.PathLength, name)
				assert.InDelta(t, base.PathCost, m.PathCost, 1e-9, name)
				assert.LessOrEqual(t, m.NodesVisited, base.NodesVisited, name)
			}
		}
	}
}

func TestRun_DiagonalCost(t *testing.T) {
	g := mustGrid(t, 4, 4, nil, domain.C(0, 0), domain.C(3, 3), true)
	m := run(t, g, domain.AStar(domain.HeuristicEuclidean)).Metrics()

	assert.Equal(t, 3, m.PathLength)
	assert.InDelta(t, 3*domain.DiagonalCost, m.PathCost, 1e-9)
}

type negativeGraph struct{}

func (negativeGraph) Neighbors(c domain.Coordinate) []domain.Neighbor {
	return []domain.Neighbor{{Coord: domain.C(c.Row, c.Col+1), Cost: -1}}
}

func TestRun_NegativeEdge(t *testing.T) {
	_, err := search.Run(context.Background(), negativeGraph{}, domain.C(0, 0), domain.C(0, 5), domain.Dijkstra())
	assert.ErrorIs(t, err, search.ErrNegativeEdge)
}

func TestRun_Canceled(t *testing.T) {
	g := mustGrid(t, 10, 10, nil, domain.C(0, 0), domain.C(9, 9), false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := search.Run(ctx, g, g.Start(), g.End(), domain.Dijkstra())
	assert.ErrorIs(t, err, context.Canceled)
}
