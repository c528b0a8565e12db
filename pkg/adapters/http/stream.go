package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/aretw0/pathrace/pkg/session"
)

// StreamManager fans session frames out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager. A nil logger discards logs.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for one session. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Close ends every subscription of a session by closing its channels.
// Unsubscribe funcs handed out earlier become no-ops.
func (sm *StreamManager) Close(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	subs := sm.subscribers[sessionID]
	for ch := range subs {
		close(ch)
	}
	delete(sm.subscribers, sessionID)
	if len(subs) > 0 {
		sm.logger.Debug("SSE: Closed session streams", "session_id", sessionID, "subscribers", len(subs))
	}
}

// Subscribers counts the live subscriptions of a session.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast sends msg to every subscriber of a session. Slow clients miss
// messages rather than block the sender.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Observe is a session.FrameObserver publishing each frame's summary.
func (sm *StreamManager) Observe(sessionID string, f *playback.Frame) {
	if sm.Subscribers(sessionID) == 0 {
		return
	}
	data, err := json.Marshal(session.Summarize(sessionID, f))
	if err != nil {
		sm.logger.Error("SSE: failed to encode frame", "session_id", sessionID, "err", err)
		return
	}
	sm.Broadcast(sessionID, string(data))
}
