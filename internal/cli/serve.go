package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/pathrace/pkg/adapters/http"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/aretw0/pathrace/pkg/session"
)

// Handler assembles the HTTP API. The returned func releases the session
// engines and the store.
func (a *App) Handler() (http.Handler, func(), error) {
	store, locker, closeStore := a.Store()
	comparator := a.Comparator()
	streams := httpAdapter.NewStreamManager(a.Logger)

	opts := []session.Option{
		session.WithLogger(a.Logger),
		session.WithComparator(comparator),
		session.WithFrameObserver(streams.Observe),
		session.WithPlaybackOptions(
			playback.WithInterval(a.Config.Playback.Interval),
			playback.WithHooks(a.Metrics.Hooks(a.Logger)),
		),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	mgr := session.NewManager(store, opts...)

	cleanup := func() {
		mgr.Close()
		if err := closeStore(); err != nil {
			a.Logger.Warn("Failed to close session store", "err", err)
		}
	}

	srv, err := httpAdapter.New(comparator,
		httpAdapter.WithSessions(mgr),
		httpAdapter.WithCatalog(a.Catalog),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(a.Metrics.Handler()),
		httpAdapter.WithLogger(a.Logger),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return srv.Handler(), cleanup, nil
}

// Serve runs the HTTP API on addr until ctx is cancelled, then shuts down
// within the configured timeout.
func Serve(ctx context.Context, a *App, addr string) error {
	handler, cleanup, err := a.Handler()
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting pathrace server", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		timeout := a.Config.Server.ShutdownTimeout
		a.Logger.Info("Start shutdown...", "timeout", timeout)

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// SSE streams never finish on their own.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Graceful shutdown did not complete", "timeout", timeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.Logger.Info("pathrace server stopped gracefully")
		return nil
	}
}
