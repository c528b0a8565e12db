package pathrace

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
)

// Racer is the high-level entry point for the pathrace library.
// It wraps the comparator and the playback engine behind one set of options.
type Racer struct {
	comparator *compare.Comparator
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	parallel   int
	interval   time.Duration
	speed      int
}

// Option defines a functional option for configuring the Racer.
type Option func(*Racer)

// WithLifecycleHooks registers observability hooks for searches and playback.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Racer) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Racer) {
		r.logger = logger
	}
}

// WithParallel runs up to n algorithms concurrently (default 1).
func WithParallel(n int) Option {
	return func(r *Racer) {
		r.parallel = n
	}
}

// WithInterval sets the playback tick period.
func WithInterval(d time.Duration) Option {
	return func(r *Racer) {
		r.interval = d
	}
}

// WithSpeed sets how many steps each playback tick advances.
func WithSpeed(n int) Option {
	return func(r *Racer) {
		r.speed = n
	}
}

// New creates a Racer.
func New(opts ...Option) *Racer {
	r := &Racer{
		logger:   logging.NewNop(),
		parallel: 1,
		interval: playback.DefaultInterval,
		speed:    1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.comparator = compare.New(
		compare.WithLogger(r.logger),
		compare.WithParallel(r.parallel),
		compare.WithHooks(r.hooks),
	)
	return r
}

// Compare runs every algorithm of req over the same grid.
func (r *Racer) Compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResult, error) {
	return r.comparator.Compare(ctx, req)
}

// Playback creates an idle engine over res that draws to renderers.
func (r *Racer) Playback(res *domain.ComparisonResult, renderers ...playback.Renderer) *playback.Engine {
	opts := []playback.Option{
		playback.WithLogger(r.logger),
		playback.WithInterval(r.interval),
		playback.WithSpeed(r.speed),
		playback.WithHooks(r.hooks),
	}
	for _, rr := range renderers {
		opts = append(opts, playback.WithRenderer(rr))
	}
	return playback.New(res, opts...)
}

// Race compares req and returns an idle engine ready to replay the result.
// The caller must Close the engine.
func (r *Racer) Race(ctx context.Context, req domain.ComparisonRequest, renderers ...playback.Renderer) (*playback.Engine, error) {
	res, err := r.Compare(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.Playback(res, renderers...), nil
}

// Comparator exposes the underlying comparator for adapters.
func (r *Racer) Comparator() *compare.Comparator {
	return r.comparator
}
