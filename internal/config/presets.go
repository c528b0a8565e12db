package config

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/pathrace/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinPresets []byte

// ErrUnknownPreset is returned when a preset name is not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Wall is a straight run of obstacles. Exactly one of Row or Col is set;
// From and To are inclusive bounds along the other axis.
type Wall struct {
	Row  *int `mapstructure:"row" json:"row,omitempty"`
	Col  *int `mapstructure:"col" json:"col,omitempty"`
	From int  `mapstructure:"from" json:"from"`
	To   int  `mapstructure:"to" json:"to"`
}

func (w Wall) cells() ([]domain.Coordinate, error) {
	if (w.Row == nil) == (w.Col == nil) {
		return nil, fmt.Errorf("wall needs exactly one of row or col")
	}
	if w.To < w.From {
		return nil, fmt.Errorf("wall range %d..%d is reversed", w.From, w.To)
	}
	out := make([]domain.Coordinate, 0, w.To-w.From+1)
	for i := w.From; i <= w.To; i++ {
		if w.Row != nil {
			out = append(out, domain.C(*w.Row, i))
		} else {
			out = append(out, domain.C(i, *w.Col))
		}
	}
	return out, nil
}

// Preset is a named, ready-to-run comparison.
type Preset struct {
	Name        string `mapstructure:"-" json:"name"`
	Description string `mapstructure:"description" json:"description"`
	Walls       []Wall `mapstructure:"walls" json:"walls,omitempty"`

	domain.ComparisonRequest `mapstructure:",squash"`
}

// Request returns the preset as a comparison request with walls expanded
// into obstacles. A non-empty algorithms list overrides the preset's own.
func (p Preset) Request(algorithms ...string) (domain.ComparisonRequest, error) {
	req := p.ComparisonRequest
	req.Obstacles = slices.Clone(p.Obstacles)
	for _, w := range p.Walls {
		cells, err := w.cells()
		if err != nil {
			return req, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		req.Obstacles = append(req.Obstacles, cells...)
	}
	if len(algorithms) > 0 {
		req.Algorithms = slices.Clone(algorithms)
	} else {
		req.Algorithms = slices.Clone(p.Algorithms)
	}
	if p.Density != nil {
		d := *p.Density
		req.Density = &d
	}
	return req, nil
}

// Catalog is the set of known presets.
type Catalog struct {
	byName map[string]Preset
}

type presetsFile struct {
	Presets map[string]map[string]any `yaml:"presets"`
}

// LoadCatalog parses the built-in presets.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Preset)}
	var file presetsFile
	if err := yaml.Unmarshal(builtinPresets, &file); err != nil {
		return nil, fmt.Errorf("failed to parse built-in presets: %w", err)
	}
	if err := c.Merge(file.Presets); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge adds or replaces presets from raw documents keyed by name.
func (c *Catalog) Merge(raw map[string]map[string]any) error {
	for name, doc := range raw {
		var p Preset
		if err := Decode(doc, &p); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		p.Name = name
		if _, err := p.Request(); err != nil {
			return err
		}
		c.byName[name] = p
	}
	return nil
}

// Get looks a preset up by name.
func (c *Catalog) Get(name string) (Preset, error) {
	p, ok := c.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, c.Names())
	}
	return p, nil
}

// Names lists preset names alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// List returns every preset, sorted by name.
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.byName))
	for _, n := range c.Names() {
		out = append(out, c.byName[n])
	}
	return out
}
