package domain

// Step is one recorded snapshot of search progress.
type Step struct {
	// Visited lists expanded cells in expansion order.
	Visited []Coordinate `json:"visited"`
	// Frontier lists cells enqueued but not yet expanded.
	Frontier []Coordinate `json:"frontier"`
	// Path is set only on the terminal step of a successful search.
	Path []Coordinate `json:"path"`
}

// Metrics summarises one algorithm run.
type Metrics struct {
	NodesVisited  int     `json:"nodes_visited"`
	PathLength    int     `json:"path_length"`
	PathFound     bool    `json:"path_found"`
	ExecutionTime float64 `json:"execution_time"`
	PathCost      float64 `json:"path_cost"`
	NodesExplored int     `json:"nodes_explored"`
	Heuristic     string  `json:"heuristic,omitempty"`
}

// AlgorithmResult is the outcome of one algorithm over the shared grid.
type AlgorithmResult struct {
	Name    string       `json:"name"`
	Steps   []Step       `json:"steps"`
	Metrics Metrics      `json:"metrics"`
	Path    []Coordinate `json:"path,omitempty"`
	// Error is set when the run failed internally. Other runs are unaffected.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the run ended in an internal failure.
func (r *AlgorithmResult) Failed() bool { return r.Error != "" }

// StepCount is the number of recorded steps. A run made without steps
// reports the count its trace would have had: one step per expansion plus
// the initial empty one.
func (r *AlgorithmResult) StepCount() int {
	if r.Steps != nil || r.Failed() {
		return len(r.Steps)
	}
	return r.Metrics.NodesVisited + 1
}

// MaxIndex is the last valid step index, or 0 for an empty trace.
func (r *AlgorithmResult) MaxIndex() int {
	if len(r.Steps) == 0 {
		return 0
	}
	return len(r.Steps) - 1
}

// ComparisonResult groups every run over one grid, in request order.
type ComparisonResult struct {
	Grid       *Grid             `json:"grid"`
	Algorithms []AlgorithmResult `json:"algorithms"`
}

// MaxIndex is the largest step index across all runs.
func (c *ComparisonResult) MaxIndex() int {
	m := 0
	for i := range c.Algorithms {
		m = max(m, c.Algorithms[i].MaxIndex())
	}
	return m
}
