package domain_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Validation(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		obstacles []domain.Coordinate
		start     domain.Coordinate
		end       domain.Coordinate
		field     string
	}{
		{"zero width", 0, 5, nil, domain.C(0, 0), domain.C(1, 1), "width"},
		{"negative height", 5, -1, nil, domain.C(0, 0), domain.C(1, 1), "height"},
		{"width too large", domain.MaxDimension + 1, 5, nil, domain.C(0, 0), domain.C(1, 1), "width"},
		{"height too large", 5, 1 << 40, nil, domain.C(0, 0), domain.C(1, 1), "height"},
		{"start out of bounds", 5, 5, nil, domain.C(5, 0), domain.C(1, 1), "start"},
		{"end out of bounds", 5, 5, nil, domain.C(0, 0), domain.C(0, -1), "end"},
		{"start equals end", 5, 5, nil, domain.C(2, 2), domain.C(2, 2), "end"},
		{"start on obstacle", 5, 5, []domain.Coordinate{domain.C(0, 0)}, domain.C(0, 0), domain.C(4, 4), "start"},
		{"end on obstacle", 5, 5, []domain.Coordinate{domain.C(4, 4)}, domain.C(0, 0), domain.C(4, 4), "end"},
		{"obstacle out of bounds", 5, 5, []domain.Coordinate{domain.C(9, 9)}, domain.C(0, 0), domain.C(4, 4), "obstacles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := domain.NewGrid(tt.width, tt.height, tt.obstacles, tt.start, tt.end, false)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, domain.ErrInvalidGrid)

			var gridErr *domain.InvalidGridError
			require.True(t, errors.As(err, &gridErr))
			assert.Equal(t, tt.field, gridErr.Field)
		})
	}
}

func TestGrid_Neighbors(t *testing.T) {
	t.Run("orthogonal only", func(t *testing.T) {
		g, err := domain.NewGrid(3, 3, []domain.Coordinate{domain.C(0, 1)}, domain.C(0, 0), domain.C(2, 2), false)
		require.NoError(t, err)

		got := g.Neighbors(domain.C(1, 1))
		// up is blocked
		assert.Equal(t, []domain.Neighbor{
			{Coord: domain.C(2, 1), Cost: 1},
			{Coord: domain.C(1, 0), Cost: 1},
			{Coord: domain.C(1, 2), Cost: 1},
		}, got)
	})

	t.Run("corner", func(t *testing.T) {
		g, err := domain.NewGrid(3, 3, nil, domain.C(0, 0), domain.C(2, 2), false)
		require.NoError(t, err)
		assert.Len(t, g.Neighbors(domain.C(0, 0)), 2)
	})

	t.Run("diagonal enabled", func(t *testing.T) {
		g, err := domain.NewGrid(3, 3, nil, domain.C(0, 0), domain.C(2, 2), true)
		require.NoError(t, err)

		got := g.Neighbors(domain.C(1, 1))
		require.Len(t, got, 8)
		for _, n := range got[:4] {
			assert.Equal(t, 1.0, n.Cost)
		}
		for _, n := range got[4:] {
			assert.InDelta(t, math.Sqrt2, n.Cost, 1e-12)
		}
	})
}

func TestGrid_Obstacles(t *testing.T) {
	obstacles := []domain.Coordinate{domain.C(2, 1), domain.C(0, 2), domain.C(2, 0), domain.C(0, 2)}
	g, err := domain.NewGrid(3, 3, obstacles, domain.C(0, 0), domain.C(1, 1), false)
	require.NoError(t, err)

	assert.Equal(t, []domain.Coordinate{domain.C(0, 2), domain.C(2, 0), domain.C(2, 1)}, g.Obstacles())
	assert.True(t, g.IsObstacle(domain.C(2, 0)))
	assert.False(t, g.IsObstacle(domain.C(1, 0)))

	// Mutating the returned slice must not leak into the grid.
	got := g.Obstacles()
	got[0] = domain.C(1, 2)
	assert.False(t, g.IsObstacle(domain.C(1, 2)))
}

func TestGrid_MarshalJSON(t *testing.T) {
	g, err := domain.NewGrid(4, 2, []domain.Coordinate{domain.C(1, 2)}, domain.C(0, 0), domain.C(1, 3), true)
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"width": 4, "height": 2,
		"start": [0, 0], "end": [1, 3],
		"obstacles": [[1, 2]],
		"allow_diagonal": true
	}`, string(data))
}

func TestCoordinate_UnmarshalJSON(t *testing.T) {
	var c domain.Coordinate
	require.NoError(t, json.Unmarshal([]byte(`[3, 7]`), &c))
	assert.Equal(t, domain.C(3, 7), c)

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"row": 1}`), &c))
}

func TestRandomObstacles(t *testing.T) {
	start, end := domain.C(0, 0), domain.C(9, 9)

	a, err := domain.RandomObstacles(10, 10, 0.3, start, end, 42)
	require.NoError(t, err)
	b, err := domain.RandomObstacles(10, 10, 0.3, start, end, 42)
	require.NoError(t, err)

	assert.Len(t, a, 30)
	assert.Equal(t, a, b, "same seed must produce the same layout")
	assert.NotContains(t, a, start)
	assert.NotContains(t, a, end)

	full, err := domain.RandomObstacles(2, 2, 1.0, domain.C(0, 0), domain.C(1, 1), 1)
	require.NoError(t, err)
	assert.Len(t, full, 2, "start and end are always excluded")

	_, err = domain.RandomObstacles(10, 10, 1.5, start, end, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)
}

func TestRandomObstacles_OversizedGrid(t *testing.T) {
	var (
		obstacles []domain.Coordinate
		err       error
	)
	require.NotPanics(t, func() {
		obstacles, err = domain.RandomObstacles(1<<31, 1<<31, 0.1, domain.C(0, 0), domain.C(1, 1), 1)
	})
	assert.Nil(t, obstacles)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)

	_, err = domain.RandomObstacles(domain.MaxDimension, domain.MaxDimension+1, 0.1, domain.C(0, 0), domain.C(1, 1), 1)
	var gridErr *domain.InvalidGridError
	require.ErrorAs(t, err, &gridErr)
	assert.Equal(t, "height", gridErr.Field)

	_, err = domain.RandomObstacles(domain.MaxDimension, domain.MaxDimension, 0.1, domain.C(0, 0), domain.C(1, 1), 1)
	assert.NoError(t, err)
}

func TestComparisonRequest_BuildGrid(t *testing.T) {
	density := 0.2
	req := domain.ComparisonRequest{
		Width: 10, Height: 10,
		Start: domain.C(0, 0), End: domain.C(9, 9),
		Obstacles: []domain.Coordinate{domain.C(5, 5)},
		Density:   &density,
		Seed:      7,
	}

	g, err := req.BuildGrid()
	require.NoError(t, err)
	assert.True(t, g.IsObstacle(domain.C(5, 5)))
	assert.GreaterOrEqual(t, len(g.Obstacles()), 20)
}
