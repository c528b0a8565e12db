package render

import (
	"fmt"

	"github.com/aretw0/pathrace/pkg/playback"
)

// RGB is a 24-bit colour.
type RGB struct{ R, G, B uint8 }

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette maps cell kinds to colours.
type Palette struct {
	Background RGB
	Kinds      map[playback.CellKind]RGB
}

// DefaultPalette is a dark theme. Visited cells blend from the background
// towards their colour as they get more recent.
var DefaultPalette = Palette{
	Background: RGB{24, 24, 32},
	Kinds: map[playback.CellKind]RGB{
		playback.CellUnvisited: {58, 58, 72},
		playback.CellObstacle:  {140, 140, 150},
		playback.CellVisited:   {96, 165, 250},
		playback.CellFrontier:  {250, 204, 21},
		playback.CellPath:      {74, 222, 128},
		playback.CellStart:     {244, 114, 182},
		playback.CellEnd:       {248, 113, 113},
	},
}

// Color is the colour of one cell, scaled by its intensity.
func (p Palette) Color(c playback.Cell) RGB {
	base, ok := p.Kinds[c.Kind]
	if !ok {
		return p.Background
	}
	if c.Kind != playback.CellVisited || c.Intensity >= 1 {
		return base
	}
	return blend(p.Background, base, c.Intensity)
}

func blend(from, to RGB, t float64) RGB {
	t = max(0, min(t, 1))
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B)}
}

// Glyph is the character drawn for a cell when colours are unavailable,
// or on top of the colour otherwise.
func Glyph(c playback.Cell) rune {
	switch c.Kind {
	case playback.CellObstacle:
		return '#'
	case playback.CellVisited:
		if c.Intensity >= 0.75 {
			return 'o'
		}
		return ':'
	case playback.CellFrontier:
		return '+'
	case playback.CellPath:
		return '*'
	case playback.CellStart:
		return 'S'
	case playback.CellEnd:
		return 'E'
	}
	return '.'
}
