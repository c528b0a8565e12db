package compare

import (
	"log/slog"
	"time"

	"github.com/aretw0/pathrace/pkg/domain"
)

// Option configures a Comparator.
type Option func(*Comparator)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		c.logger = logger
	}
}

// WithHooks registers lifecycle hooks fired around each run.
// With parallel runs enabled, hooks may be called concurrently.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Comparator) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithParallel runs up to n algorithms at once. n <= 1 runs them in order.
func WithParallel(n int) Option {
	return func(c *Comparator) {
		c.parallel = n
	}
}

// WithClock overrides the clock used to time searches.
func WithClock(now func() time.Time) Option {
	return func(c *Comparator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithoutSteps drops the per-step snapshots from results. Metrics and the
// path are still reported; AlgorithmResult.StepCount stays accurate.
func WithoutSteps() Option {
	return func(c *Comparator) {
		c.skipSteps = true
	}
}
