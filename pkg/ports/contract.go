package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSession(id string) *domain.SessionState {
	density := 0.1
	s := domain.NewSessionState(id, domain.ComparisonRequest{
		Width:      8,
		Height:     6,
		Start:      domain.C(0, 0),
		End:        domain.C(5, 7),
		Obstacles:  []domain.Coordinate{domain.C(2, 2), domain.C(3, 4)},
		Algorithms: []string{"Dijkstra", "AStar:euclidean"},
		Density:    &density,
		Seed:       9,
	})
	s.Step = 4
	s.Speed = 3
	s.Status = domain.StatusPaused
	return s
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := contractSession(sessionID)

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, session.Step, loaded.Step)
		assert.Equal(t, session.Speed, loaded.Speed)
		assert.Equal(t, session.Status, loaded.Status)
		assert.Equal(t, session.Request.Obstacles, loaded.Request.Obstacles)
		assert.Equal(t, session.Request.Algorithms, loaded.Request.Algorithms)
		assert.Equal(t, session.Request.End, loaded.Request.End)
		require.NotNil(t, loaded.Request.Density)
		assert.Equal(t, *session.Request.Density, *loaded.Request.Density)
		assert.Equal(t, session.Request.Seed, loaded.Request.Seed)
		assert.WithinDuration(t, session.UpdatedAt, loaded.UpdatedAt, time.Second)
	})

	t.Run("Isolation", func(t *testing.T) {
		session := contractSession(sessionID + "-iso")
		require.NoError(t, store.Save(ctx, session))
		defer func() { _ = store.Delete(ctx, session.ID) }()

		// Mutating the caller's copy must not leak into the store.
		session.Request.Obstacles[0] = domain.C(7, 7)
		session.Step = 99

		loaded, err := store.Load(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.C(2, 2), loaded.Request.Obstacles[0])
		assert.Equal(t, 4, loaded.Step)
	})

	t.Run("Overwrite", func(t *testing.T) {
		session := contractSession(sessionID)
		session.Step = 7
		require.NoError(t, store.Save(ctx, session))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Step)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractSession(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, contractSession(id1))
		_ = store.Save(ctx, contractSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
