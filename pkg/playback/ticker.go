package playback

import (
	"sync"
	"time"
)

// Ticker delivers scheduling ticks to a playback loop.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.Ticker. It is the default TickerFactory.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// ManualClock hands out tickers that only fire when Tick is called.
// Use its NewTicker method as a TickerFactory in tests.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock creates a clock starting at the zero time.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// NewTicker implements TickerFactory. The interval is ignored.
func (m *ManualClock) NewTicker(time.Duration) Ticker {
	t := &manualTicker{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
	}
	m.mu.Lock()
	m.tickers = append(m.tickers, t)
	m.mu.Unlock()
	return t
}

// Tick delivers one tick to the most recent live ticker and blocks until a
// loop receives it. It reports false when no ticker is live.
func (m *ManualClock) Tick() bool {
	m.mu.Lock()
	m.now = m.now.Add(time.Millisecond)
	now := m.now
	var live *manualTicker
	for i := len(m.tickers) - 1; i >= 0; i-- {
		if !m.tickers[i].stopped() {
			live = m.tickers[i]
			break
		}
	}
	m.mu.Unlock()

	if live == nil {
		return false
	}
	select {
	case live.ch <- now:
		return true
	case <-live.done:
		return false
	}
}

// Created is the number of tickers handed out so far.
func (m *ManualClock) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

type manualTicker struct {
	ch   chan time.Time
	done chan struct{}
	once sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *manualTicker) stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
