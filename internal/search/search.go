package search

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/pathrace/pkg/domain"
)

// ErrNegativeEdge is returned when a neighbor reports a negative step cost.
var ErrNegativeEdge = errors.New("search: negative edge cost")

// cancelCheckInterval is how many expansions run between context checks.
const cancelCheckInterval = 256

// Graph is the read-only view a search needs. *domain.Grid satisfies it.
type Graph interface {
	Neighbors(c domain.Coordinate) []domain.Neighbor
}

// Run searches g from start to end with the given algorithm and records a
// compact trace. Steps are not materialised here, so callers can time Run
// alone and call Trace.Steps afterwards.
//
// Dijkstra orders the open set by g; A* by f = g + h(node, end). Both
// break ties by lower g, then by push order.
func Run(ctx context.Context, g Graph, start, end domain.Coordinate, algo domain.Algorithm) (*Trace, error) {
	var h domain.HeuristicFunc
	if algo.Kind == domain.KindAStar {
		h = algo.Heuristic.Func()
	}
	priority := func(cost float64, c domain.Coordinate) float64 {
		if h == nil {
			return cost
		}
		return cost + h(c, end)
	}

	trace := newTrace(start)
	open := make(openQueue, 0, 64)
	var seq uint64
	push := func(c domain.Coordinate, cost float64) {
		heap.Push(&open, &queueItem{node: c, g: cost, priority: priority(cost, c), seq: seq})
		seq++
	}

	best := map[domain.Coordinate]float64{start: 0}
	parent := make(map[domain.Coordinate]domain.Coordinate)
	closed := make(map[domain.Coordinate]struct{})
	push(start, 0)

	for open.Len() > 0 {
		if len(trace.order)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := heap.Pop(&open).(*queueItem)
		if _, done := closed[current.node]; done {
			continue
		}
		closed[current.node] = struct{}{}
		trace.expand(current.node)

		if current.node == end {
			trace.finish(reconstructPath(parent, end, start), current.g)
			return trace, nil
		}

		for _, nb := range g.Neighbors(current.node) {
			if nb.Cost < 0 {
				return nil, fmt.Errorf("%w: %s -> %s costs %v", ErrNegativeEdge, current.node, nb.Coord, nb.Cost)
			}
			if _, done := closed[nb.Coord]; done {
				continue
			}
			tentative := current.g + nb.Cost
			if prev, seen := best[nb.Coord]; seen && tentative >= prev {
				continue
			}
			best[nb.Coord] = tentative
			parent[nb.Coord] = current.node
			trace.discover(nb.Coord)
			push(nb.Coord, tentative)
		}
	}

	trace.finish(nil, 0)
	return trace, nil
}

// reconstructPath walks parent pointers back from current to start.
func reconstructPath(parent map[domain.Coordinate]domain.Coordinate, current, start domain.Coordinate) []domain.Coordinate {
	path := []domain.Coordinate{current}
	for current != start {
		prev, ok := parent[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
