package ports

import (
	"context"

	"github.com/aretw0/pathrace/pkg/domain"
)

// SessionStore persists playback sessions. Only the request and the
// cursor are stored; the comparison result is recomputed on load.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.SessionState) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of live sessions.
	List(ctx context.Context) ([]string, error)
}
