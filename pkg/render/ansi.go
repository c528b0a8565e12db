package render

import (
	"io"
	"strings"

	"github.com/aretw0/pathrace/pkg/playback"
	"github.com/muesli/termenv"
)

// ANSI writes frames as text, one panel per algorithm side by side.
// It implements playback.Renderer.
type ANSI struct {
	out     *termenv.Output
	palette Palette
	clear   bool
}

// ANSIOption configures an ANSI renderer.
type ANSIOption func(*ansiConfig)

type ansiConfig struct {
	profile *termenv.Profile
	palette Palette
	clear   bool
}

// WithProfile forces a colour profile instead of detecting it from the writer.
func WithProfile(p termenv.Profile) ANSIOption {
	return func(c *ansiConfig) {
		c.profile = &p
	}
}

// WithPalette replaces DefaultPalette.
func WithPalette(p Palette) ANSIOption {
	return func(c *ansiConfig) {
		c.palette = p
	}
}

// WithClear clears the screen before every frame, for live replays.
func WithClear(clear bool) ANSIOption {
	return func(c *ansiConfig) {
		c.clear = clear
	}
}

// NewANSI creates a renderer writing to w.
func NewANSI(w io.Writer, opts ...ANSIOption) *ANSI {
	cfg := ansiConfig{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&cfg)
	}

	var out *termenv.Output
	if cfg.profile != nil {
		out = termenv.NewOutput(w, termenv.WithProfile(*cfg.profile))
	} else {
		out = termenv.NewOutput(w)
	}
	return &ANSI{out: out, palette: cfg.palette, clear: cfg.clear}
}

// Draw implements playback.Renderer.
func (a *ANSI) Draw(f *playback.Frame) {
	if a.clear {
		a.out.ClearScreen()
	}
	_, _ = io.WriteString(a.out, a.Format(f))
}

// Format returns the text of one frame.
func (a *ANSI) Format(f *playback.Frame) string {
	w := panelWidth(f)
	sep := strings.Repeat(" ", gutter)
	var b strings.Builder

	b.WriteString(a.out.String(statusLine(f)).Bold().String())
	b.WriteByte('\n')

	names := make([]string, len(f.Panels))
	for i, p := range f.Panels {
		names[i] = a.out.String(fit(p.Name, w)).Bold().String()
	}
	b.WriteString(strings.Join(names, sep))
	b.WriteByte('\n')

	row := make([]string, len(f.Panels))
	for r := 0; r < f.Height; r++ {
		for i := range f.Panels {
			row[i] = a.gridRow(f.Panels[i].Cells[r], w)
		}
		b.WriteString(strings.TrimRight(strings.Join(row, sep), " "))
		b.WriteByte('\n')
	}

	stats := make([][]string, len(f.Panels))
	for i := range f.Panels {
		stats[i] = panelStats(&f.Panels[i])
	}
	for line := 0; line < statsHeight(f); line++ {
		for i := range f.Panels {
			text := ""
			if line < len(stats[i]) {
				text = stats[i][line]
			}
			row[i] = fit(text, w)
		}
		b.WriteString(strings.TrimRight(strings.Join(row, sep), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *ANSI) gridRow(cells []playback.Cell, w int) string {
	var b strings.Builder
	for _, c := range cells {
		glyph := string(Glyph(c))
		if a.out.Profile == termenv.Ascii {
			b.WriteString(glyph)
			continue
		}
		bg := a.out.Color(a.palette.Color(c).Hex())
		fg := a.out.Color(a.palette.Background.Hex())
		b.WriteString(a.out.String(glyph).Foreground(fg).Background(bg).String())
	}
	b.WriteString(strings.Repeat(" ", w-len(cells)))
	return b.String()
}
