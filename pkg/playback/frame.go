package playback

import "github.com/aretw0/pathrace/pkg/domain"

// CellKind is what a grid cell shows in a frame.
type CellKind uint8

const (
	CellUnvisited CellKind = iota
	CellObstacle
	CellVisited
	CellFrontier
	CellPath
	CellStart
	CellEnd
)

func (k CellKind) String() string {
	switch k {
	case CellObstacle:
		return "obstacle"
	case CellVisited:
		return "visited"
	case CellFrontier:
		return "frontier"
	case CellPath:
		return "path"
	case CellStart:
		return "start"
	case CellEnd:
		return "end"
	}
	return "unvisited"
}

// Minimum intensity of the oldest visited cell.
const minIntensity = 0.25

// Cell is one rendered grid cell. Intensity is in [0, 1]; for visited
// cells it grows with recency, every other kind is drawn at full strength.
type Cell struct {
	Kind      CellKind
	Intensity float64
}

// PanelFrame is the render state of one algorithm at a global step.
type PanelFrame struct {
	Name      string
	StepIndex int // local cursor
	MaxIndex  int
	Cells     [][]Cell // [row][col]
	Metrics   domain.Metrics
	Done      bool // cursor sits on the terminal step
	Error     string

	Visited    int
	Frontier   int
	PathLength int
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Snapshot
	Width  int
	Height int
	Panels []PanelFrame
}

// LocalIndex clamps a global cursor to one trace.
func LocalIndex(global, localMax int) int {
	return max(0, min(global, localMax))
}

// BuildFrame renders every panel of res at global step index step.
func BuildFrame(res *domain.ComparisonResult, snap Snapshot) Frame {
	f := Frame{
		Snapshot: snap,
		Width:    res.Grid.Width(),
		Height:   res.Grid.Height(),
		Panels:   make([]PanelFrame, len(res.Algorithms)),
	}
	for i := range res.Algorithms {
		f.Panels[i] = BuildPanel(res.Grid, &res.Algorithms[i], snap.Step)
	}
	return f
}

// BuildPanel computes one panel. Precedence is path over frontier over
// visited over unvisited; start and end always keep their own kind.
func BuildPanel(grid *domain.Grid, res *domain.AlgorithmResult, global int) PanelFrame {
	w, h := grid.Width(), grid.Height()
	cells := make([][]Cell, h)
	for r := range cells {
		cells[r] = make([]Cell, w)
	}
	for _, o := range grid.Obstacles() {
		cells[o.Row][o.Col] = Cell{Kind: CellObstacle, Intensity: 1}
	}

	p := PanelFrame{
		Name:     res.Name,
		MaxIndex: res.MaxIndex(),
		Metrics:  res.Metrics,
		Error:    res.Error,
	}

	if len(res.Steps) > 0 {
		p.StepIndex = LocalIndex(global, p.MaxIndex)
		p.Done = p.StepIndex == p.MaxIndex
		step := res.Steps[p.StepIndex]

		n := len(step.Visited)
		for i, c := range step.Visited {
			cells[c.Row][c.Col] = Cell{Kind: CellVisited, Intensity: fade(i, n)}
		}
		for _, c := range step.Frontier {
			cells[c.Row][c.Col] = Cell{Kind: CellFrontier, Intensity: 1}
		}
		for _, c := range step.Path {
			cells[c.Row][c.Col] = Cell{Kind: CellPath, Intensity: 1}
		}

		p.Visited = n
		p.Frontier = len(step.Frontier)
		if len(step.Path) > 0 {
			p.PathLength = len(step.Path) - 1
		}
	}

	s, e := grid.Start(), grid.End()
	cells[s.Row][s.Col] = Cell{Kind: CellStart, Intensity: 1}
	cells[e.Row][e.Col] = Cell{Kind: CellEnd, Intensity: 1}

	p.Cells = cells
	return p
}

// fade maps visit position pos of n to [minIntensity, 1].
func fade(pos, n int) float64 {
	return minIntensity + (1-minIntensity)*float64(pos+1)/float64(n)
}
