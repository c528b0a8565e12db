package render

import (
	"context"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/gdamore/tcell/v2"
)

// Screen draws frames onto a tcell screen. It implements playback.Renderer.
type Screen struct {
	screen  tcell.Screen
	palette Palette
}

// NewScreen wraps an initialised tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s, palette: DefaultPalette}
}

// Draw implements playback.Renderer.
func (s *Screen) Draw(f *playback.Frame) {
	s.screen.Clear()
	bold := tcell.StyleDefault.Bold(true)
	w := panelWidth(f)

	s.text(0, 0, statusLine(f), bold)
	for i := range f.Panels {
		p := &f.Panels[i]
		x := i * (w + gutter)
		s.text(x, 1, fit(p.Name, w), bold)

		for r, row := range p.Cells {
			for col, c := range row {
				style := tcell.StyleDefault.
					Foreground(s.color(s.palette.Background)).
					Background(s.color(s.palette.Color(c)))
				s.screen.SetContent(x+col, 2+r, Glyph(c), nil, style)
			}
		}
		for line, text := range panelStats(p) {
			s.text(x, 2+f.Height+line, text, tcell.StyleDefault)
		}
	}
	s.text(0, 3+f.Height+statsHeight(f), "space play/pause  left/right step  +/- speed  r reset  q quit", tcell.StyleDefault.Dim(true))
	s.screen.Show()
}

func (s *Screen) color(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (s *Screen) text(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// HandleKey applies one key press to the engine. It reports false when the
// key asks to quit.
func HandleKey(e *playback.Engine, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		e.GoToStep(e.CurrentStep() + 1)
	case tcell.KeyLeft:
		e.GoToStep(e.CurrentStep() - 1)
	case tcell.KeyHome:
		e.GoToStep(0)
	case tcell.KeyEnd:
		e.GoToStep(e.MaxSteps())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if e.State() == domain.StatusPlaying {
				e.Pause()
			} else {
				e.Play()
			}
		case 'r':
			e.Reset()
		case '+', '=':
			e.SetSpeed(e.Speed() + 1)
			e.Redraw()
		case '-':
			e.SetSpeed(e.Speed() - 1)
			e.Redraw()
		}
	}
	return true
}

// Viewer runs an interactive replay on a screen until the user quits or
// ctx is done. The caller owns the screen and must Fini it afterwards.
type Viewer struct {
	screen tcell.Screen
	engine *playback.Engine
}

// NewViewer binds an engine to a screen. The engine must draw through
// NewScreen(s) for key presses to show up.
func NewViewer(s tcell.Screen, e *playback.Engine) *Viewer {
	return &Viewer{screen: s, engine: e}
}

// Run polls screen events and turns them into playback controls.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	v.engine.Redraw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !HandleKey(v.engine, ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.engine.Redraw()
			}
		}
	}
}
