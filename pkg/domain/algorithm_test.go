package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Algorithm
	}{
		{"Dijkstra", domain.Dijkstra()},
		{"AStar", domain.AStar(domain.HeuristicManhattan)},
		{"AStar:manhattan", domain.AStar(domain.HeuristicManhattan)},
		{"AStar:Euclidean", domain.AStar(domain.HeuristicEuclidean)},
		{"AStar:chebyshev", domain.AStar(domain.HeuristicChebyshev)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseAlgorithm(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "BFS", "AStar:octile", "Dijkstra:manhattan", "astar"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := domain.ParseAlgorithm(bad)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestParseAlgorithms(t *testing.T) {
	_, err := domain.ParseAlgorithms(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	algos, err := domain.ParseAlgorithms([]string{"AStar:euclidean", "Dijkstra"})
	require.NoError(t, err)
	assert.Equal(t, "AStar:euclidean", algos[0].Name())
	assert.Equal(t, "Dijkstra", algos[1].Name())
}

func TestHeuristics(t *testing.T) {
	a, b := domain.C(1, 2), domain.C(4, 6)

	assert.Equal(t, 7.0, domain.Manhattan(a, b))
	assert.Equal(t, 5.0, domain.Euclidean(a, b))
	assert.Equal(t, 4.0, domain.Chebyshev(a, b))

	// Symmetric and zero on identity.
	for _, h := range []domain.Heuristic{domain.HeuristicManhattan, domain.HeuristicEuclidean, domain.HeuristicChebyshev} {
		f := h.Func()
		assert.Equal(t, f(a, b), f(b, a), h.String())
		assert.Zero(t, f(a, a), h.String())
	}

	assert.InDelta(t, math.Sqrt2, domain.Euclidean(domain.C(0, 0), domain.C(1, 1)), 1e-12)
}
