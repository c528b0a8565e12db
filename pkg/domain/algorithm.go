package domain

import (
	"fmt"
	"strings"
)

// AlgorithmKind is the closed set of search strategies.
type AlgorithmKind int

const (
	KindDijkstra AlgorithmKind = iota
	KindAStar
)

// Algorithm is a resolved algorithm selection. Heuristic is only
// meaningful when Kind is KindAStar.
type Algorithm struct {
	Kind      AlgorithmKind
	Heuristic Heuristic
}

// Dijkstra returns the Dijkstra variant.
func Dijkstra() Algorithm { return Algorithm{Kind: KindDijkstra} }

// AStar returns the A* variant with heuristic h.
func AStar(h Heuristic) Algorithm { return Algorithm{Kind: KindAStar, Heuristic: h} }

// Name is the canonical label, e.g. "Dijkstra" or "AStar:manhattan".
func (a Algorithm) Name() string {
	if a.Kind == KindAStar {
		return "AStar:" + a.Heuristic.String()
	}
	return "Dijkstra"
}

func (a Algorithm) String() string { return a.Name() }

// ParseAlgorithm resolves "Dijkstra" or "AStar:<heuristic>". A bare
// "AStar" defaults to the manhattan heuristic.
func ParseAlgorithm(name string) (Algorithm, error) {
	kind, heuristic, hasHeuristic := strings.Cut(strings.TrimSpace(name), ":")
	switch kind {
	case "Dijkstra":
		if hasHeuristic {
			return Algorithm{}, &InvalidRequestError{Field: "algorithms", Reason: "Dijkstra takes no heuristic", Value: name}
		}
		return Dijkstra(), nil
	case "AStar":
		if !hasHeuristic {
			return AStar(HeuristicManhattan), nil
		}
		h, ok := ParseHeuristic(heuristic)
		if !ok {
			return Algorithm{}, &InvalidRequestError{
				Field:  "algorithms",
				Reason: fmt.Sprintf("unknown heuristic (available: %s)", strings.Join(HeuristicNames(), ", ")),
				Value:  name,
			}
		}
		return AStar(h), nil
	}
	return Algorithm{}, &InvalidRequestError{Field: "algorithms", Reason: "unknown algorithm", Value: name}
}

// ParseAlgorithms resolves every name, failing on an empty list or the
// first unknown entry.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return nil, &InvalidRequestError{Field: "algorithms", Reason: "at least one algorithm is required"}
	}
	out := make([]Algorithm, 0, len(names))
	for _, n := range names {
		a, err := ParseAlgorithm(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
