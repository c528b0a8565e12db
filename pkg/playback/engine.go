package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/domain"
)

// DefaultInterval is the tick period when none is configured.
const DefaultInterval = 50 * time.Millisecond

// Renderer draws frames. Draw calls never overlap. A renderer must not call
// back into the engine's control methods.
type Renderer interface {
	Draw(f *Frame)
}

// DrawFunc adapts a per-panel callback to Renderer: it is called once per
// panel, in request order, for every frame.
type DrawFunc func(p *PanelFrame)

// Draw implements Renderer.
func (fn DrawFunc) Draw(f *Frame) {
	for i := range f.Panels {
		fn(&f.Panels[i])
	}
}

// FrameFunc adapts a whole-frame callback to Renderer.
type FrameFunc func(f *Frame)

// Draw implements Renderer.
func (fn FrameFunc) Draw(f *Frame) { fn(f) }

// Snapshot is the cursor state of an engine at one instant.
type Snapshot struct {
	Step    int
	Max     int
	Speed   int
	Status  domain.PlaybackStatus
	Cursors []int

	version uint64
}

// Advance is the pure tick function: the next global index after one tick.
func Advance(index, speed, maxIndex int) int {
	if speed < 1 {
		speed = 1
	}
	return max(0, min(index+speed, maxIndex))
}

// Engine replays a ComparisonResult under one global step cursor.
// All methods are safe for concurrent use.
type Engine struct {
	result    *domain.ComparisonResult
	logger    *slog.Logger
	renderers []Renderer
	newTicker TickerFactory
	interval  time.Duration
	hooks     domain.LifecycleHooks
	maxIndex  int

	mu      sync.Mutex
	step    int
	speed   int
	status  domain.PlaybackStatus
	gen     uint64 // bumped whenever a running loop must stop acting
	version uint64 // bumped on every state change
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup

	renderMu sync.Mutex
	drawn    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer adds a renderer. Several renderers are drawn in order.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderers = append(e.renderers, r)
	}
}

// WithTicker replaces the ticker factory (default NewTicker).
func WithTicker(f TickerFactory) Option {
	return func(e *Engine) {
		e.newTicker = f
	}
}

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithSpeed sets the initial per-tick advance.
func WithSpeed(n int) Option {
	return func(e *Engine) {
		e.speed = max(1, n)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStatus sets the initial status of an engine restored from a saved
// session. Only StatusIdle and StatusPaused apply; a playing engine must be
// started with Play.
func WithStatus(status domain.PlaybackStatus) Option {
	return func(e *Engine) {
		if status == domain.StatusIdle || status == domain.StatusPaused {
			e.status = status
		}
	}
}

// WithHooks registers OnPlayback for ticks and status changes.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// New creates an idle engine at step 0. Nothing is drawn until the first
// control call or Redraw.
func New(result *domain.ComparisonResult, opts ...Option) *Engine {
	e := &Engine{
		result:    result,
		newTicker: NewTicker,
		interval:  DefaultInterval,
		speed:     1,
		status:    domain.StatusIdle,
		maxIndex:  result.MaxIndex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Result is the comparison being replayed.
func (e *Engine) Result() *domain.ComparisonResult { return e.result }

// GoToStep moves the global cursor to i, clamped to [0, MaxSteps()].
// Playback continues from the new position if it was running.
func (e *Engine) GoToStep(i int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.step = max(0, min(i, e.maxIndex))
	snap := e.changedLocked()
	e.mu.Unlock()

	e.publish(domain.EventPlaybackTick, snap)
}

// Play starts the tick loop. At the last step it restarts from 0.
// Calling Play while playing does nothing.
func (e *Engine) Play() {
	e.mu.Lock()
	if e.closed || e.status == domain.StatusPlaying {
		e.mu.Unlock()
		return
	}
	if e.step >= e.maxIndex {
		e.step = 0
	}
	e.status = domain.StatusPlaying
	e.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	gen := e.gen
	ticker := e.newTicker(e.interval)
	e.wg.Add(1)
	snap := e.changedLocked()
	e.mu.Unlock()

	go e.loop(ctx, gen, ticker)
	e.publish(domain.EventPlaybackState, snap)
}

// Pause freezes the cursor. It is a no-op unless playing.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.closed || e.status != domain.StatusPlaying {
		e.mu.Unlock()
		return
	}
	e.status = domain.StatusPaused
	e.stopLocked()
	snap := e.changedLocked()
	e.mu.Unlock()

	e.publish(domain.EventPlaybackState, snap)
}

// Reset stops playback, returns to step 0 and redraws the initial frame.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.status = domain.StatusIdle
	e.step = 0
	e.stopLocked()
	snap := e.changedLocked()
	e.mu.Unlock()

	e.publish(domain.EventPlaybackState, snap)
}

// SetSpeed changes the per-tick advance; n < 1 is treated as 1. A running
// loop picks it up on its next tick.
func (e *Engine) SetSpeed(n int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.speed = max(1, n)
	snap := e.changedLocked()
	e.mu.Unlock()

	e.emit(domain.EventPlaybackState, snap)
}

// Redraw draws the current frame without changing state.
func (e *Engine) Redraw() {
	e.mu.Lock()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.draw(snap)
}

// CurrentStep is the global cursor.
func (e *Engine) CurrentStep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step
}

// MaxSteps is the largest valid global index, max(len(steps)-1) over all
// algorithms.
func (e *Engine) MaxSteps() int { return e.maxIndex }

// State is the playback status.
func (e *Engine) State() domain.PlaybackStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Speed is the per-tick advance.
func (e *Engine) Speed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Cursors returns each algorithm's local cursor, in request order.
func (e *Engine) Cursors() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursorsLocked()
}

// Snapshot returns the full cursor state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Frame computes the frame for the current cursor.
func (e *Engine) Frame() Frame {
	return BuildFrame(e.result, e.Snapshot())
}

// Close stops playback for good and waits for the loop to exit. Control
// calls after Close are ignored. Must not be called from a Renderer.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.status == domain.StatusPlaying {
		e.status = domain.StatusPaused
	}
	e.stopLocked()
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Engine) loop(ctx context.Context, gen uint64, ticker Ticker) {
	defer e.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if !e.tick(gen) {
				return
			}
		}
	}
}

// tick advances the cursor once. It reports whether the loop should keep
// running; a tick from a superseded generation never acts.
func (e *Engine) tick(gen uint64) bool {
	e.mu.Lock()
	if gen != e.gen || e.status != domain.StatusPlaying {
		e.mu.Unlock()
		return false
	}
	e.step = Advance(e.step, e.speed, e.maxIndex)
	finished := e.step >= e.maxIndex
	if finished {
		e.status = domain.StatusPaused
		e.stopLocked()
	}
	snap := e.changedLocked()
	e.mu.Unlock()

	e.publish(domain.EventPlaybackTick, snap)
	if finished {
		e.logger.Debug("playback finished", "step", snap.Step)
		e.emit(domain.EventPlaybackState, snap)
	}
	return !finished
}

// stopLocked invalidates any running loop.
func (e *Engine) stopLocked() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *Engine) changedLocked() Snapshot {
	e.version++
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Step:    e.step,
		Max:     e.maxIndex,
		Speed:   e.speed,
		Status:  e.status,
		Cursors: e.cursorsLocked(),
		version: e.version,
	}
}

func (e *Engine) cursorsLocked() []int {
	out := make([]int, len(e.result.Algorithms))
	for i := range e.result.Algorithms {
		out[i] = LocalIndex(e.step, e.result.Algorithms[i].MaxIndex())
	}
	return out
}

// publish draws snap and emits the matching hook.
func (e *Engine) publish(t domain.EventType, snap Snapshot) {
	e.draw(snap)
	e.emit(t, snap)
}

// draw renders snap unless a newer state has already been drawn.
func (e *Engine) draw(snap Snapshot) {
	if len(e.renderers) == 0 {
		return
	}
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	if snap.version < e.drawn {
		return
	}
	e.drawn = snap.version

	f := BuildFrame(e.result, snap)
	for _, r := range e.renderers {
		r.Draw(&f)
	}
}

func (e *Engine) emit(t domain.EventType, snap Snapshot) {
	if e.hooks.OnPlayback == nil {
		return
	}
	e.hooks.OnPlayback(context.Background(), &domain.PlaybackEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		Step:      snap.Step,
		Max:       snap.Max,
		Speed:     snap.Speed,
		Status:    snap.Status,
	})
}
