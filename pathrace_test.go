package pathrace_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aretw0/pathrace"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRacer_HooksSeeSearchesAndPlayback(t *testing.T) {
	var searches, ticks atomic.Int32
	racer := pathrace.New(
		pathrace.WithParallel(2),
		pathrace.WithSpeed(3),
		pathrace.WithLifecycleHooks(domain.LifecycleHooks{
			OnSearchFinish: func(context.Context, *domain.SearchEvent) { searches.Add(1) },
			OnPlayback:     func(context.Context, *domain.PlaybackEvent) { ticks.Add(1) },
		}),
	)

	var frames int
	engine, err := racer.Race(context.Background(), domain.ComparisonRequest{
		Width: 6, Height: 6,
		Start: domain.C(0, 0), End: domain.C(5, 5),
		Algorithms: []string{"Dijkstra", "AStar:euclidean"},
	}, playback.FrameFunc(func(*playback.Frame) { frames++ }))
	require.NoError(t, err)
	defer engine.Close()

	assert.Equal(t, int32(2), searches.Load())
	assert.Equal(t, 3, engine.Speed())

	engine.GoToStep(2)
	assert.Equal(t, 1, frames)
	assert.Equal(t, int32(1), ticks.Load())
}

func TestRacer_InvalidRequest(t *testing.T) {
	_, err := pathrace.New().Race(context.Background(), domain.ComparisonRequest{
		Width: 3, Height: 3,
		Start: domain.C(0, 0), End: domain.C(2, 2),
		Algorithms: []string{"BFS"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
