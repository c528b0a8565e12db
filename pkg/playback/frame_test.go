package playback

import (
	"testing"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPanel_Precedence(t *testing.T) {
	grid, err := domain.NewGrid(3, 3, []domain.Coordinate{domain.C(2, 2)}, domain.C(0, 0), domain.C(2, 0), false)
	require.NoError(t, err)

	c := domain.C
	res := &domain.AlgorithmResult{
		Name: "Dijkstra",
		Steps: []domain.Step{{
			Visited:  []domain.Coordinate{c(0, 0), c(1, 0), c(0, 1), c(1, 1)},
			Frontier: []domain.Coordinate{c(1, 1), c(0, 2)},
			Path:     []domain.Coordinate{c(0, 0), c(1, 0), c(2, 0)},
		}},
	}

	p := BuildPanel(grid, res, 0)
	kinds := func(r, col int) CellKind { return p.Cells[r][col].Kind }

	assert.Equal(t, CellStart, kinds(0, 0), "start keeps its kind over visited and path")
	assert.Equal(t, CellEnd, kinds(2, 0), "end keeps its kind over path")
	assert.Equal(t, CellPath, kinds(1, 0), "path beats visited")
	assert.Equal(t, CellFrontier, kinds(1, 1), "frontier beats visited")
	assert.Equal(t, CellVisited, kinds(0, 1))
	assert.Equal(t, CellFrontier, kinds(0, 2))
	assert.Equal(t, CellObstacle, kinds(2, 2))
	assert.Equal(t, CellUnvisited, kinds(1, 2))

	assert.Equal(t, 4, p.Visited)
	assert.Equal(t, 2, p.Frontier)
	assert.Equal(t, 2, p.PathLength)
	assert.True(t, p.Done)
}

func TestBuildPanel_RecencyFade(t *testing.T) {
	grid, err := domain.NewGrid(4, 1, nil, domain.C(0, 0), domain.C(0, 3), false)
	require.NoError(t, err)

	res := &domain.AlgorithmResult{
		Name: "Dijkstra",
		Steps: []domain.Step{{
			Visited: []domain.Coordinate{domain.C(0, 0), domain.C(0, 1), domain.C(0, 2), domain.C(0, 3)},
		}},
	}
	row := BuildPanel(grid, res, 0).Cells[0]

	// Start and end cells are fixed, so check the two middle cells.
	assert.InDelta(t, 0.25+0.75*2.0/4.0, row[1].Intensity, 1e-12)
	assert.InDelta(t, 0.25+0.75*3.0/4.0, row[2].Intensity, 1e-12)
	assert.Less(t, row[1].Intensity, row[2].Intensity, "older visits are more muted")

	assert.InDelta(t, 1.0, fade(3, 4), 1e-12)
	assert.InDelta(t, 0.25+0.75/4, fade(0, 4), 1e-12)
}

func TestBuildPanel_FailedRun(t *testing.T) {
	grid, err := domain.NewGrid(2, 2, nil, domain.C(0, 0), domain.C(1, 1), false)
	require.NoError(t, err)

	res := &domain.AlgorithmResult{Name: "AStar:euclidean", Steps: []domain.Step{}, Error: "panic: boom"}
	p := BuildPanel(grid, res, 7)

	assert.Equal(t, "panic: boom", p.Error)
	assert.Zero(t, p.StepIndex)
	assert.Equal(t, CellStart, p.Cells[0][0].Kind)
	assert.Equal(t, CellUnvisited, p.Cells[0][1].Kind)
}

func TestLocalIndex(t *testing.T) {
	assert.Equal(t, 3, LocalIndex(3, 10))
	assert.Equal(t, 10, LocalIndex(30, 10))
	assert.Equal(t, 0, LocalIndex(-1, 10))
}
