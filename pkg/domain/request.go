package domain

import "slices"

// ComparisonRequest is the inbound comparison description.
// Density and Seed are optional: when Density is set, random obstacles are
// generated and merged with the explicit list.
type ComparisonRequest struct {
	Width         int          `json:"width" yaml:"width" mapstructure:"width"`
	Height        int          `json:"height" yaml:"height" mapstructure:"height"`
	Start         Coordinate   `json:"start" yaml:"start" mapstructure:"start"`
	End           Coordinate   `json:"end" yaml:"end" mapstructure:"end"`
	AllowDiagonal bool         `json:"allow_diagonal" yaml:"allow_diagonal" mapstructure:"allow_diagonal"`
	Obstacles     []Coordinate `json:"obstacles" yaml:"obstacles" mapstructure:"obstacles"`
	Algorithms    []string     `json:"algorithms" yaml:"algorithms" mapstructure:"algorithms"`
	Density       *float64     `json:"density,omitempty" yaml:"density" mapstructure:"density"`
	Seed          uint64       `json:"seed,omitempty" yaml:"seed" mapstructure:"seed"`
}

// BuildGrid validates the request's grid part and constructs the Grid.
func (r *ComparisonRequest) BuildGrid() (*Grid, error) {
	obstacles := r.Obstacles
	if r.Density != nil {
		random, err := RandomObstacles(r.Width, r.Height, *r.Density, r.Start, r.End, r.Seed)
		if err != nil {
			return nil, err
		}
		obstacles = append(append([]Coordinate{}, r.Obstacles...), random...)
	}
	return NewGrid(r.Width, r.Height, obstacles, r.Start, r.End, r.AllowDiagonal)
}

// Clone returns a deep copy of the request.
func (r ComparisonRequest) Clone() ComparisonRequest {
	out := r
	out.Obstacles = slices.Clone(r.Obstacles)
	out.Algorithms = slices.Clone(r.Algorithms)
	if r.Density != nil {
		d := *r.Density
		out.Density = &d
	}
	return out
}
