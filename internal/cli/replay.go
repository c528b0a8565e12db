package cli

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/aretw0/pathrace/pkg/render"
	"github.com/gdamore/tcell/v2"
)

// PlayOptions tune the animation. Zero values fall back to the config file.
type PlayOptions struct {
	Interval time.Duration
	Speed    int
}

func (a *App) playbackOptions(p PlayOptions) []playback.Option {
	interval := p.Interval
	if interval <= 0 {
		interval = a.Config.Playback.Interval
	}
	speed := p.Speed
	if speed <= 0 {
		speed = a.Config.Playback.Speed
	}
	return []playback.Option{
		playback.WithLogger(a.Logger),
		playback.WithInterval(interval),
		playback.WithSpeed(speed),
		playback.WithHooks(a.Metrics.Hooks(a.Logger)),
	}
}

// RunReplay animates a comparison on w until every trace has finished or
// ctx is cancelled.
func RunReplay(ctx context.Context, a *App, w io.Writer, opts RequestOptions, play PlayOptions) error {
	req, err := opts.Build(a.Catalog)
	if err != nil {
		return err
	}
	res, err := a.Comparator().Compare(ctx, req)
	if err != nil {
		return err
	}

	finished := make(chan struct{})
	var once sync.Once
	done := domain.LifecycleHooks{
		OnPlayback: func(_ context.Context, e *domain.PlaybackEvent) {
			if e.Status == domain.StatusPaused && e.Step == e.Max {
				once.Do(func() { close(finished) })
			}
		},
	}

	engineOpts := append(a.playbackOptions(play),
		playback.WithRenderer(render.NewANSI(w, render.WithClear(isTerminal(w)))),
		playback.WithHooks(done),
	)
	engine := playback.New(res, engineOpts...)
	defer engine.Close()

	engine.Play()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		engine.Pause()
		printSystemMessage(w, "Replay interrupted at step %d/%d", engine.CurrentStep(), engine.MaxSteps())
		return nil
	}
}

// RunView opens the interactive terminal viewer.
func RunView(ctx context.Context, a *App, opts RequestOptions, play PlayOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return View(ctx, a, screen, opts, play)
}

// View runs the viewer on an initialised screen. It returns when the user
// quits or ctx is cancelled.
func View(ctx context.Context, a *App, screen tcell.Screen, opts RequestOptions, play PlayOptions) error {
	req, err := opts.Build(a.Catalog)
	if err != nil {
		return err
	}
	res, err := a.Comparator().Compare(ctx, req)
	if err != nil {
		return err
	}

	engineOpts := append(a.playbackOptions(play), playback.WithRenderer(render.NewScreen(screen)))
	engine := playback.New(res, engineOpts...)
	defer engine.Close()

	err = render.NewViewer(screen, engine).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
