package domain

import (
	"math"
	"strings"
)

// HeuristicFunc estimates the remaining cost between two cells.
type HeuristicFunc func(a, b Coordinate) float64

// Heuristic selects one of the built-in distance estimates.
type Heuristic int

const (
	HeuristicManhattan Heuristic = iota
	HeuristicEuclidean
	HeuristicChebyshev
)

var heuristicNames = map[Heuristic]string{
	HeuristicManhattan: "manhattan",
	HeuristicEuclidean: "euclidean",
	HeuristicChebyshev: "chebyshev",
}

func (h Heuristic) String() string {
	if name, ok := heuristicNames[h]; ok {
		return name
	}
	return "unknown"
}

// Func returns the distance function for h.
func (h Heuristic) Func() HeuristicFunc {
	switch h {
	case HeuristicEuclidean:
		return Euclidean
	case HeuristicChebyshev:
		return Chebyshev
	default:
		return Manhattan
	}
}

// ParseHeuristic resolves a case-insensitive heuristic name.
func ParseHeuristic(name string) (Heuristic, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for h, n := range heuristicNames {
		if n == name {
			return h, true
		}
	}
	return 0, false
}

// HeuristicNames lists the accepted heuristic names in enum order.
func HeuristicNames() []string {
	return []string{"manhattan", "euclidean", "chebyshev"}
}

// Manhattan is |Δrow| + |Δcol|. Admissible for 4-neighbor movement.
func Manhattan(a, b Coordinate) float64 {
	return float64(abs(a.Row-b.Row) + abs(a.Col-b.Col))
}

// Euclidean is the straight-line distance.
func Euclidean(a, b Coordinate) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Chebyshev is max(|Δrow|, |Δcol|).
func Chebyshev(a, b Coordinate) float64 {
	return float64(max(abs(a.Row-b.Row), abs(a.Col-b.Col)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
