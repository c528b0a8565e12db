package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pathrace/pkg/adapters/memory"
	redisstore "github.com/aretw0/pathrace/pkg/adapters/redis"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/aretw0/pathrace/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	inner *memory.Store
	saves int
	mu    sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, state *domain.SessionState) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.inner.Save(ctx, state)
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.inner.Load(ctx, sessionID)
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	return s.inner.Delete(ctx, sessionID)
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func request() domain.ComparisonRequest {
	return domain.ComparisonRequest{
		Width: 5, Height: 5,
		Start: domain.C(0, 0), End: domain.C(4, 4),
		Algorithms: []string{"Dijkstra", "AStar:manhattan"},
	}
}

func TestManager_CreateAndControl(t *testing.T) {
	store := memory.NewStore()
	mgr := session.NewManager(store)
	defer mgr.Close()
	ctx := context.Background()

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 0, view.Step)
	assert.Equal(t, domain.StatusIdle, view.Status)
	require.Len(t, view.Panels, 2)
	assert.Equal(t, "Dijkstra", view.Panels[0].Name)
	assert.Equal(t, view.Panels[0].MaxStep, view.MaxStep, "Dijkstra has the longest trace")
	assert.Less(t, view.Panels[1].MaxStep, view.MaxStep)

	view, err = mgr.Control(ctx, view.ID, session.ActionGoTo, 1000)
	require.NoError(t, err)
	assert.Equal(t, view.MaxStep, view.Step)
	assert.True(t, view.Panels[1].Done)
	assert.Equal(t, 8, view.Panels[1].PathLength)

	view, err = mgr.Control(ctx, view.ID, session.ActionSpeed, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Speed)

	stored, err := store.Load(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.MaxStep, stored.Step)
	assert.Equal(t, 4, stored.Speed)

	view, err = mgr.Control(ctx, view.ID, session.ActionReset, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Step)
	assert.Equal(t, domain.StatusIdle, view.Status)
}

func TestManager_PlayWithManualClock(t *testing.T) {
	clock := playback.NewManualClock()
	mgr := session.NewManager(memory.NewStore(), session.WithPlaybackOptions(playback.WithTicker(clock.NewTicker)))
	defer mgr.Close()
	ctx := context.Background()

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)

	view, err = mgr.Control(ctx, view.ID, session.ActionPlay, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaying, view.Status)

	require.True(t, clock.Tick())
	require.Eventually(t, func() bool {
		v, err := mgr.Open(ctx, view.ID)
		return err == nil && v.Step == 1
	}, time.Second, time.Millisecond)

	view, err = mgr.Control(ctx, view.ID, session.ActionPause, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, view.Status)
	assert.Equal(t, 1, view.Step)
}

func TestManager_RestoreFromStore(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	first := session.NewManager(store)
	view, err := first.Create(ctx, request())
	require.NoError(t, err)
	_, err = first.Control(ctx, view.ID, session.ActionGoTo, 7)
	require.NoError(t, err)
	_, err = first.Control(ctx, view.ID, session.ActionSpeed, 3)
	require.NoError(t, err)
	first.Close()

	// A second process sharing the store rebuilds the same replay.
	second := session.NewManager(store)
	defer second.Close()
	restored, err := second.Open(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, restored.Step)
	assert.Equal(t, 3, restored.Speed)
	assert.Equal(t, view.MaxStep, restored.MaxStep)

	ids, err := second.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{view.ID}, ids)
}

func TestManager_RestoreStatus(t *testing.T) {
	ctx := context.Background()
	maxStep := func(t *testing.T) int {
		mgr := session.NewManager(memory.NewStore())
		defer mgr.Close()
		view, err := mgr.Create(ctx, request())
		require.NoError(t, err)
		return view.MaxStep
	}(t)

	tests := []struct {
		name       string
		status     domain.PlaybackStatus
		step       int
		wantStatus domain.PlaybackStatus
		wantStep   int
	}{
		{"finished while playing", domain.StatusPlaying, maxStep, domain.StatusPaused, maxStep},
		{"playing past the end", domain.StatusPlaying, maxStep + 10, domain.StatusPaused, maxStep},
		{"paused midway", domain.StatusPaused, 3, domain.StatusPaused, 3},
		{"playing midway", domain.StatusPlaying, 3, domain.StatusPlaying, 3},
		{"idle", domain.StatusIdle, 2, domain.StatusIdle, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			state := domain.NewSessionState("saved", request())
			state.Status = tt.status
			state.Step = tt.step
			require.NoError(t, store.Save(ctx, state))

			clock := playback.NewManualClock()
			mgr := session.NewManager(store, session.WithPlaybackOptions(playback.WithTicker(clock.NewTicker)))
			defer mgr.Close()

			view, err := mgr.Open(ctx, "saved")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, view.Status)
			assert.Equal(t, tt.wantStep, view.Step)
		})
	}
}

func TestManager_Replace(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	defer mgr.Close()
	ctx := context.Background()

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)
	_, err = mgr.Control(ctx, view.ID, session.ActionGoTo, 5)
	require.NoError(t, err)

	bigger := request()
	bigger.Width, bigger.Height = 12, 12
	bigger.End = domain.C(11, 11)
	replaced, err := mgr.Replace(ctx, view.ID, bigger)
	require.NoError(t, err)
	assert.Equal(t, view.ID, replaced.ID)
	assert.Equal(t, 0, replaced.Step)
	assert.Greater(t, replaced.MaxStep, view.MaxStep)

	bad := request()
	bad.Algorithms = []string{"BFS"}
	_, err = mgr.Replace(ctx, view.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestManager_Errors(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	defer mgr.Close()
	ctx := context.Background()

	bad := request()
	bad.End = bad.Start
	_, err := mgr.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)

	_, err = mgr.Open(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = mgr.Control(ctx, "missing", session.ActionPlay, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)
	_, err = mgr.Control(ctx, view.ID, session.Action("rewind"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	require.NoError(t, mgr.Delete(ctx, view.ID))
	_, err = mgr.Open(ctx, view.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_FrameObserver(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	mgr := session.NewManager(memory.NewStore(), session.WithFrameObserver(func(id string, f *playback.Frame) {
		mu.Lock()
		defer mu.Unlock()
		seen[id] = f.Step
	}))
	defer mgr.Close()
	ctx := context.Background()

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)
	_, err = mgr.Control(ctx, view.ID, session.ActionGoTo, 3)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, seen[view.ID])
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{inner: memory.NewStore()}
	mgr := session.NewManager(store)
	defer mgr.Close()
	ctx := context.Background()

	view, err := mgr.Create(ctx, request())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			_, err := mgr.Control(ctx, view.ID, session.ActionGoTo, step)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Every control call persisted what its own engine state was.
	opened, err := mgr.Open(ctx, view.ID)
	require.NoError(t, err)
	stored, err := store.Load(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.Step, stored.Step)
}

func TestParseAction(t *testing.T) {
	a, err := session.ParseAction(" Play ")
	require.NoError(t, err)
	assert.Equal(t, session.ActionPlay, a)
	assert.False(t, a.NeedsValue())
	assert.True(t, session.ActionGoTo.NeedsValue())

	_, err = session.ParseAction("stop")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestManager_DistributedLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisstore.NewFromClient(client)
	locker := redisstore.NewLocker(client, "pathrace:")
	ctx := context.Background()

	// Two replicas sharing Redis see the same session.
	a := session.NewManager(store, session.WithLocker(locker), session.WithLockTTL(time.Second))
	b := session.NewManager(store, session.WithLocker(locker), session.WithLockTTL(time.Second))
	defer a.Close()
	defer b.Close()

	view, err := a.Create(ctx, request())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i, mgr := range []*session.Manager{a, b, a, b} {
		wg.Add(1)
		go func(mgr *session.Manager, step int) {
			defer wg.Done()
			_, err := mgr.Control(ctx, view.ID, session.ActionGoTo, step)
			assert.NoError(t, err)
		}(mgr, i+1)
	}
	wg.Wait()

	fromB, err := b.Open(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.MaxStep, fromB.MaxStep)
	assert.False(t, mr.Exists("pathrace:lock:"+view.ID), "lock must be released")
}
