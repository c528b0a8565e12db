package domain

import "time"

// PlaybackStatus is the mode of a playback engine.
type PlaybackStatus string

const (
	StatusIdle    PlaybackStatus = "idle"    // Initial, or after reset
	StatusPlaying PlaybackStatus = "playing" // Scheduled ticks advance the cursor
	StatusPaused  PlaybackStatus = "paused"  // Frozen by pause, or finished
)

// SessionState is the durable part of a playback session.
// The comparison result itself is never stored: searches are
// deterministic, so it is recomputed from Request when a session is opened.
type SessionState struct {
	ID        string            `json:"id"`
	Request   ComparisonRequest `json:"request"`
	Step      int               `json:"step"`
	Speed     int               `json:"speed"`
	Status    PlaybackStatus    `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewSessionState creates an idle session positioned at step 0.
func NewSessionState(id string, req ComparisonRequest) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		ID:        id,
		Request:   req,
		Speed:     1,
		Status:    StatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy, so stores never share slices with callers.
func (s *SessionState) Clone() *SessionState {
	out := *s
	out.Request = s.Request.Clone()
	return &out
}
