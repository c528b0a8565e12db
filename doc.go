/*
Package pathrace compares grid pathfinding algorithms and replays their
searches side by side.

Every algorithm of a comparison runs over the same immutable grid and
records a step trace: the visited set, the frontier and the best known
path after each expansion. A playback engine then moves all traces under
one global cursor, so a fast algorithm simply holds its final frame while
the slower ones catch up.

# Algorithms

  - Dijkstra: uniform-cost search.
  - AStar:<heuristic>: A* with manhattan (the default), euclidean or
    chebyshev distance.

Moves are 4-connected by default. With AllowDiagonal, diagonal moves cost
sqrt(2).

# Usage

	racer := pathrace.New()
	engine, err := racer.Race(ctx, domain.ComparisonRequest{
		Width: 20, Height: 20,
		Start: domain.C(0, 0), End: domain.C(19, 19),
		Algorithms: []string{"Dijkstra", "AStar:manhattan"},
	}, render.NewANSI(os.Stdout))
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()
	engine.Play()

The pathrace command wraps the same packages: "compare" prints metrics,
"replay" and "view" animate in the terminal, "serve" exposes an HTTP API
with live sessions, and "mcp" offers comparisons to AI agents.
*/
package pathrace
