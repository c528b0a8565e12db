package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(compare.New())
	require.NoError(t, err)
	return s
}

func TestCompare_ExplicitGrid(t *testing.T) {
	s := newServer(t)
	res, err := s.handleCompare(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"width":      5.0,
		"height":     5.0,
		"start":      []interface{}{0.0, 0.0},
		"end":        []interface{}{4.0, 4.0},
		"obstacles":  []interface{}{[]interface{}{2.0, 2.0}},
		"algorithms": []interface{}{"Dijkstra", "AStar:euclidean"},
	})
	require.NoError(t, err)

	assert.Equal(t, Point{4, 4}, res.End)
	assert.Equal(t, 1, res.Obstacles)
	require.Len(t, res.Algorithms, 2)
	for _, a := range res.Algorithms {
		assert.True(t, a.Metrics.PathFound)
		assert.Equal(t, 8, a.Metrics.PathLength)
		assert.Len(t, a.Path, 9)
		assert.Equal(t, a.Metrics.NodesVisited+1, a.Steps)
	}
	assert.Equal(t, "euclidean", res.Algorithms[1].Metrics.Heuristic)
	assert.Contains(t, res.Report, "| Dijkstra | found |")

	// Points marshal as [row, col] pairs.
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"end":[4,4]`)
}

func TestCompare_StepCountMatchesFullTrace(t *testing.T) {
	args := map[string]interface{}{
		"preset":     "maze",
		"algorithms": []interface{}{"Dijkstra", "AStar:manhattan"},
	}
	s := newServer(t)
	res, err := s.handleCompare(context.Background(), mcp.CallToolRequest{}, args)
	require.NoError(t, err)

	req, err := s.requestFromArgs(args)
	require.NoError(t, err)
	full, err := compare.New().Compare(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Algorithms, 2)
	for i, a := range res.Algorithms {
		assert.Equal(t, len(full.Algorithms[i].Steps), a.Steps, a.Name)
	}
}

func TestCompare_Preset(t *testing.T) {
	s := newServer(t)
	res, err := s.handleCompare(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"preset":     "maze",
		"algorithms": []interface{}{"AStar:manhattan"},
	})
	require.NoError(t, err)
	assert.Equal(t, 40, res.Width)
	require.Len(t, res.Algorithms, 1)
	assert.Equal(t, "AStar:manhattan", res.Algorithms[0].Name)
	assert.True(t, res.Algorithms[0].Metrics.PathFound)
}

func TestCompare_Errors(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	_, err := s.handleCompare(ctx, mcp.CallToolRequest{}, map[string]interface{}{"preset": "nope"})
	assert.Error(t, err)

	_, err = s.handleCompare(ctx, mcp.CallToolRequest{}, map[string]interface{}{"preset": "maze", "width": 3.0})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = s.handleCompare(ctx, mcp.CallToolRequest{}, map[string]interface{}{"algorithms": []interface{}{"BFS"}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = s.handleCompare(ctx, mcp.CallToolRequest{}, map[string]interface{}{"width": -1.0})
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)
}

func TestCompare_OversizedGrid(t *testing.T) {
	s := newServer(t)
	args := map[string]interface{}{
		"width":   2147483648.0,
		"height":  2147483648.0,
		"density": 0.1,
	}
	var err error
	require.NotPanics(t, func() {
		_, err = s.handleCompare(context.Background(), mcp.CallToolRequest{}, args)
	})
	var gridErr *domain.InvalidGridError
	require.ErrorAs(t, err, &gridErr)
	assert.Equal(t, "width", gridErr.Field)
}

func TestListPresets(t *testing.T) {
	s := newServer(t)
	res, err := s.handleListPresets(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var entries []presetEntry
	require.NoError(t, json.Unmarshal([]byte(text.Text), &entries))

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"maze", "open_field", "random", "simple"}, names)
	assert.Equal(t, Point{45, 45}, entries[1].End)
}
