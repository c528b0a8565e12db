package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// DiagonalCost is the movement cost of a diagonal step.
const DiagonalCost = math.Sqrt2

// MaxDimension is the largest accepted grid width or height. Step traces
// grow with roughly the cube of the side.
const MaxDimension = 200

// Neighbor is an adjacent traversable cell and the cost to step into it.
type Neighbor struct {
	Coord Coordinate
	Cost  float64
}

var (
	orthogonalOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalOffsets   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Grid is an immutable obstacle map. It is safe for concurrent reads.
type Grid struct {
	width         int
	height        int
	obstacles     map[Coordinate]struct{}
	start         Coordinate
	end           Coordinate
	allowDiagonal bool
}

// NewGrid validates the inputs and builds a Grid.
// Duplicate obstacles are collapsed.
func NewGrid(width, height int, obstacles []Coordinate, start, end Coordinate, allowDiagonal bool) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	g := &Grid{
		width:         width,
		height:        height,
		obstacles:     make(map[Coordinate]struct{}, len(obstacles)),
		start:         start,
		end:           end,
		allowDiagonal: allowDiagonal,
	}

	if !g.InBounds(start) {
		return nil, gridError("start", "out of bounds", start)
	}
	if !g.InBounds(end) {
		return nil, gridError("end", "out of bounds", end)
	}
	if start == end {
		return nil, gridError("end", "must differ from start", end)
	}

	for _, o := range obstacles {
		if !g.InBounds(o) {
			return nil, gridError("obstacles", "out of bounds", o)
		}
		switch o {
		case start:
			return nil, gridError("start", "collides with an obstacle", start)
		case end:
			return nil, gridError("end", "collides with an obstacle", end)
		}
		g.obstacles[o] = struct{}{}
	}

	return g, nil
}

func (g *Grid) Width() int          { return g.width }
func (g *Grid) Height() int         { return g.height }
func (g *Grid) Start() Coordinate   { return g.start }
func (g *Grid) End() Coordinate     { return g.end }
func (g *Grid) AllowDiagonal() bool { return g.allowDiagonal }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// IsObstacle reports whether c is blocked.
func (g *Grid) IsObstacle(c Coordinate) bool {
	_, ok := g.obstacles[c]
	return ok
}

// Obstacles returns a row-major sorted copy of the obstacle set.
func (g *Grid) Obstacles() []Coordinate {
	out := make([]Coordinate, 0, len(g.obstacles))
	for c := range g.obstacles {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Coordinate) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	return out
}

// Neighbors returns the in-bounds, non-obstacle cells adjacent to c.
// Orthogonal neighbors come first (up, down, left, right), followed by
// diagonals when enabled. The order is fixed so searches stay deterministic.
func (g *Grid) Neighbors(c Coordinate) []Neighbor {
	out := make([]Neighbor, 0, 8)
	for _, d := range orthogonalOffsets {
		n := Coordinate{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.InBounds(n) && !g.IsObstacle(n) {
			out = append(out, Neighbor{Coord: n, Cost: 1})
		}
	}
	if !g.allowDiagonal {
		return out
	}
	for _, d := range diagonalOffsets {
		n := Coordinate{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.InBounds(n) && !g.IsObstacle(n) {
			out = append(out, Neighbor{Coord: n, Cost: DiagonalCost})
		}
	}
	return out
}

// EdgeCost returns the cost of moving between two adjacent cells.
func (g *Grid) EdgeCost(from, to Coordinate) float64 {
	if from.Row != to.Row && from.Col != to.Col {
		return DiagonalCost
	}
	return 1
}

type gridJSON struct {
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	Start         Coordinate   `json:"start"`
	End           Coordinate   `json:"end"`
	Obstacles     []Coordinate `json:"obstacles"`
	AllowDiagonal bool         `json:"allow_diagonal"`
}

// MarshalJSON renders the grid in the outbound payload shape.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		Width:         g.width,
		Height:        g.height,
		Start:         g.start,
		End:           g.end,
		Obstacles:     g.Obstacles(),
		AllowDiagonal: g.allowDiagonal,
	})
}

// RandomObstacles picks floor(width*height*density) obstacle cells, never
// start or end. The same seed always yields the same layout.
func RandomObstacles(width, height int, density float64, start, end Coordinate, seed uint64) ([]Coordinate, error) {
	if density < 0 || density > 1 || math.IsNaN(density) {
		return nil, gridError("density", "must be between 0.0 and 1.0", density)
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	available := make([]Coordinate, 0, width*height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			cell := Coordinate{Row: r, Col: c}
			if cell == start || cell == end {
				continue
			}
			available = append(available, cell)
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	n := int(float64(width*height) * density)
	if n > len(available) {
		n = len(available)
	}
	return available[:n], nil
}

func checkDimensions(width, height int) error {
	for _, d := range []struct {
		field string
		value int
	}{{"width", width}, {"height", height}} {
		if d.value <= 0 {
			return gridError(d.field, "must be positive", d.value)
		}
		if d.value > MaxDimension {
			return gridError(d.field, fmt.Sprintf("must be at most %d", MaxDimension), d.value)
		}
	}
	return nil
}
