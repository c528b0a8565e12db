package domain

// SweepRun is one algorithm on one generated grid of a sweep.
type SweepRun struct {
	Size    int     `json:"size"`
	Density float64 `json:"density"`
	Metrics Metrics `json:"metrics"`
	Error   string  `json:"error,omitempty"`
}

// SweepAggregate averages one algorithm over every grid of a sweep.
// Averages include unsolved and failed runs, which count a path length
// of 0.
type SweepAggregate struct {
	Algorithm     string     `json:"algorithm"`
	Runs          int        `json:"runs"`
	AvgTime       float64    `json:"avg_execution_time"`
	AvgVisited    float64    `json:"avg_nodes_visited"`
	AvgPathLength float64    `json:"avg_path_length"`
	SuccessRate   float64    `json:"success_rate"`
	Cases         []SweepRun `json:"cases"`
}

// SweepResult is a benchmark over square grids of several sizes and
// obstacle densities, one aggregate per algorithm in request order.
type SweepResult struct {
	Sizes      []int            `json:"sizes"`
	Densities  []float64        `json:"densities"`
	Seed       uint64           `json:"seed"`
	Algorithms []SweepAggregate `json:"algorithms"`
}
