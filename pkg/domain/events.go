package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart   EventType = "search_start"
	EventSearchFinish  EventType = "search_finish"
	EventPlaybackTick  EventType = "playback_tick"
	EventPlaybackState EventType = "playback_state"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SearchEvent is emitted around each algorithm run.
type SearchEvent struct {
	EventBase
	Algorithm string        `json:"algorithm"`
	Metrics   *Metrics      `json:"metrics,omitempty"` // Set on finish
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// PlaybackEvent is emitted when the global cursor moves or the status changes.
type PlaybackEvent struct {
	EventBase
	Step   int            `json:"step"`
	Max    int            `json:"max"`
	Speed  int            `json:"speed"`
	Status PlaybackStatus `json:"status"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnSearchStart  func(context.Context, *SearchEvent)
	OnSearchFinish func(context.Context, *SearchEvent)
	OnPlayback     func(context.Context, *PlaybackEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSearchStart:  chainSearch(h.OnSearchStart, other.OnSearchStart),
		OnSearchFinish: chainSearch(h.OnSearchFinish, other.OnSearchFinish),
		OnPlayback:     chainPlayback(h.OnPlayback, other.OnPlayback),
	}
}

func chainSearch(a, b func(context.Context, *SearchEvent)) func(context.Context, *SearchEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SearchEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainPlayback(a, b func(context.Context, *PlaybackEvent)) func(context.Context, *PlaybackEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *PlaybackEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
