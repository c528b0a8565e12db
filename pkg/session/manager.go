package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/aretw0/pathrace/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// FrameObserver receives every frame drawn by a session's engine.
type FrameObserver func(sessionID string, f *playback.Frame)

// Manager owns playback sessions: it persists their request and cursor,
// and keeps one live playback engine per open session.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger

	comparator *compare.Comparator
	engineOpts []playback.Option
	observer   FrameObserver

	liveMu sync.Mutex
	live   map[string]*playback.Engine
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock TTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithComparator sets the comparator used to (re)compute results.
func WithComparator(c *compare.Comparator) Option {
	return func(m *Manager) {
		m.comparator = c
	}
}

// WithPlaybackOptions are applied to every engine the manager creates.
func WithPlaybackOptions(opts ...playback.Option) Option {
	return func(m *Manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

// WithFrameObserver receives every frame of every session.
func WithFrameObserver(fn FrameObserver) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		live:    make(map[string]*playback.Engine),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.comparator == nil {
		m.comparator = compare.New(compare.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Create validates req, computes the comparison and stores a new idle
// session positioned at step 0.
func (m *Manager) Create(ctx context.Context, req domain.ComparisonRequest) (*View, error) {
	result, err := m.comparator.Compare(ctx, req)
	if err != nil {
		return nil, err
	}

	state := domain.NewSessionState(uuid.NewString(), req.Clone())
	var view *View
	err = m.WithLock(ctx, state.ID, func(ctx context.Context) error {
		if err := m.store.Save(ctx, state); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		engine := m.startEngine(state, result)
		view = newView(state.ID, engine)
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("session created", "session_id", state.ID, "max_step", view.MaxStep)
	return view, nil
}

// Open returns the current view of a session, rebuilding its engine from
// the stored request when it is not live in this process.
func (m *Manager) Open(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		_, engine, err := m.load(ctx, sessionID)
		if err != nil {
			return err
		}
		view = newView(sessionID, engine)
		return nil
	})
	return view, err
}

// Engine returns the live engine of a session, rebuilding it if needed.
func (m *Manager) Engine(ctx context.Context, sessionID string) (*playback.Engine, error) {
	var engine *playback.Engine
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		_, engine, err = m.load(ctx, sessionID)
		return err
	})
	return engine, err
}

// Control applies a playback action and persists the resulting cursor.
// arg is the target step for ActionGoTo and the speed for ActionSpeed.
func (m *Manager) Control(ctx context.Context, sessionID string, action Action, arg int) (*View, error) {
	var view *View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, engine, err := m.load(ctx, sessionID)
		if err != nil {
			return err
		}

		switch action {
		case ActionGoTo:
			engine.GoToStep(arg)
		case ActionPlay:
			engine.Play()
		case ActionPause:
			engine.Pause()
		case ActionReset:
			engine.Reset()
		case ActionSpeed:
			engine.SetSpeed(arg)
		default:
			return &domain.InvalidRequestError{Field: "action", Reason: "unknown action", Value: string(action)}
		}

		snap := engine.Snapshot()
		state.Step = snap.Step
		state.Speed = snap.Speed
		state.Status = snap.Status
		state.UpdatedAt = time.Now().UTC()
		if err := m.store.Save(ctx, state); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		view = newView(sessionID, engine)
		return nil
	})
	return view, err
}

// Replace swaps the session's request for a new one. The previous engine
// is closed, so none of its pending ticks survive.
func (m *Manager) Replace(ctx context.Context, sessionID string, req domain.ComparisonRequest) (*View, error) {
	result, err := m.comparator.Compare(ctx, req)
	if err != nil {
		return nil, err
	}

	var view *View
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		m.dropEngine(sessionID)

		state.Request = req.Clone()
		state.Step = 0
		state.Status = domain.StatusIdle
		state.UpdatedAt = time.Now().UTC()
		if err := m.store.Save(ctx, state); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		engine := m.startEngine(state, result)
		view = newView(sessionID, engine)
		return nil
	})
	return view, err
}

// Delete stops the session's engine and removes it from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.dropEngine(sessionID)
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Close stops every live engine.
func (m *Manager) Close() {
	m.liveMu.Lock()
	engines := m.live
	m.live = make(map[string]*playback.Engine)
	m.liveMu.Unlock()

	for _, e := range engines {
		e.Close()
	}
}

// load returns the stored state and a live engine. Callers hold the session lock.
func (m *Manager) load(ctx context.Context, sessionID string) (*domain.SessionState, *playback.Engine, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			m.dropEngine(sessionID)
		}
		return nil, nil, err
	}

	m.liveMu.Lock()
	engine, ok := m.live[sessionID]
	m.liveMu.Unlock()
	if ok {
		return state, engine, nil
	}

	// Searches are deterministic, so the stored request is enough to
	// rebuild the exact same traces.
	result, err := m.comparator.Compare(ctx, state.Request)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to recompute session %s: %w", sessionID, err)
	}
	engine = m.startEngine(state, result)
	m.logger.Debug("session restored", "session_id", sessionID, "step", state.Step)
	return state, engine, nil
}

func (m *Manager) startEngine(state *domain.SessionState, result *domain.ComparisonResult) *playback.Engine {
	opts := append([]playback.Option{playback.WithLogger(m.logger)}, m.engineOpts...)
	if m.observer != nil {
		id := state.ID
		opts = append(opts, playback.WithRenderer(playback.FrameFunc(func(f *playback.Frame) {
			m.observer(id, f)
		})))
	}
	// A session saved while playing at its last step had finished; Play
	// would restart it from 0, so it comes back paused instead.
	resume := state.Status == domain.StatusPlaying && state.Step < result.MaxIndex()
	if state.Status == domain.StatusPaused || (state.Status == domain.StatusPlaying && !resume) {
		opts = append(opts, playback.WithStatus(domain.StatusPaused))
	}
	engine := playback.New(result, opts...)
	engine.SetSpeed(state.Speed)
	engine.GoToStep(state.Step)
	if resume {
		engine.Play()
	}

	m.liveMu.Lock()
	m.live[state.ID] = engine
	m.liveMu.Unlock()
	return engine
}

func (m *Manager) dropEngine(sessionID string) {
	m.liveMu.Lock()
	engine, ok := m.live[sessionID]
	delete(m.live, sessionID)
	m.liveMu.Unlock()
	if ok {
		engine.Close()
	}
}
