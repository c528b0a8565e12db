/*
Package search implements Dijkstra and A* over a weighted 8-connected grid.

Run records a compact trace of the search: the expansion order, the push
order and the final path. Trace.Steps materialises the per-expansion
snapshots afterwards, so the timed part of a run never pays for them.

Edge costs must be non-negative. A heuristic only guarantees optimal paths
when it is admissible for the grid's movement model: manhattan is not,
once diagonal moves are allowed.
*/
package search
