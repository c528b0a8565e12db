package search

import (
	"slices"

	"github.com/aretw0/pathrace/pkg/domain"
)

// expansion is the delta produced by one closed node.
type expansion struct {
	node       domain.Coordinate
	discovered []domain.Coordinate
}

// Trace is the compact record of one search run.
type Trace struct {
	start      domain.Coordinate
	order      []domain.Coordinate // expansion order
	deltas     []expansion
	discovered map[domain.Coordinate]struct{}

	path  []domain.Coordinate
	cost  float64
	found bool
}

func newTrace(start domain.Coordinate) *Trace {
	return &Trace{
		start:      start,
		order:      make([]domain.Coordinate, 0, 64),
		discovered: map[domain.Coordinate]struct{}{start: {}},
	}
}

func (t *Trace) expand(c domain.Coordinate) {
	t.order = append(t.order, c)
	t.deltas = append(t.deltas, expansion{node: c})
}

// discover records c the first time it enters the open set.
func (t *Trace) discover(c domain.Coordinate) {
	if _, seen := t.discovered[c]; seen {
		return
	}
	t.discovered[c] = struct{}{}
	last := &t.deltas[len(t.deltas)-1]
	last.discovered = append(last.discovered, c)
}

func (t *Trace) finish(path []domain.Coordinate, cost float64) {
	t.path = path
	t.cost = cost
	t.found = path != nil
}

// Found reports whether end was reached.
func (t *Trace) Found() bool { return t.found }

// Path is the start-to-end path, or nil.
func (t *Trace) Path() []domain.Coordinate { return t.path }

// Cost is the accumulated cost of Path.
func (t *Trace) Cost() float64 { return t.cost }

// Expanded is the number of closed nodes.
func (t *Trace) Expanded() int { return len(t.order) }

// Explored is the number of distinct cells ever placed in the open set.
func (t *Trace) Explored() int { return len(t.discovered) }

// Metrics builds run metrics. ExecutionTime is left to the caller.
func (t *Trace) Metrics() domain.Metrics {
	m := domain.Metrics{
		NodesVisited:  t.Expanded(),
		NodesExplored: t.Explored(),
		PathFound:     t.found,
	}
	if t.found {
		m.PathLength = len(t.path) - 1
		m.PathCost = t.cost
	}
	return m
}

// Steps materialises the replayable trace. Step 0 holds the start cell in
// the frontier; step k is the state after the k-th expansion. Visited
// slices share one backing array and must be treated as read-only.
func (t *Trace) Steps() []domain.Step {
	steps := make([]domain.Step, 0, len(t.deltas)+1)
	frontier := []domain.Coordinate{t.start}
	steps = append(steps, domain.Step{
		Visited:  t.order[:0:0],
		Frontier: slices.Clone(frontier),
	})

	for k, d := range t.deltas {
		if i := slices.Index(frontier, d.node); i >= 0 {
			frontier = slices.Delete(frontier, i, i+1)
		}
		frontier = append(frontier, d.discovered...)

		next := make([]domain.Coordinate, len(frontier))
		copy(next, frontier)
		steps = append(steps, domain.Step{
			Visited:  t.order[: k+1 : k+1],
			Frontier: next,
		})
	}

	if t.found {
		steps[len(steps)-1].Path = slices.Clone(t.path)
	}
	return steps
}
