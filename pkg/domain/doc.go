/*
Package domain contains the core domain models for the pathrace engine.

It defines the fundamental entities of a search comparison: the obstacle
Grid, the Algorithm variants, the recorded Step trace and the Metrics
attached to every run. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Coordinate: A (row, col) cell address, serialized as a [r, c] pair.
  - Grid: Immutable obstacle map with start, end and adjacency mode.
  - Algorithm: Closed variant {Dijkstra, AStar(heuristic)} resolved once from a name.
  - Step: One snapshot of search progress (visited order, frontier, final path).
  - ComparisonResult: The shared Grid plus one AlgorithmResult per requested algorithm.
  - SessionState: The durable part of a playback session (request and cursor).
*/
package domain
