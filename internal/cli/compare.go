package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/pathrace/internal/config"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/render"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// RequestOptions describes a comparison from command-line flags.
type RequestOptions struct {
	Preset     string
	Width      int
	Height     int
	Start      string // "row,col"
	End        string // "row,col"; empty means the bottom-right corner
	Obstacles  string // "r,c;r,c;..."
	Diagonal   bool
	Density    float64 // 0 disables random obstacles
	Seed       uint64
	Algorithms []string

	// Changed reports whether a flag was set explicitly. With a preset,
	// only explicit flags override the preset's fields.
	Changed func(flag string) bool
}

func (o RequestOptions) changed(flag string) bool {
	return o.Changed == nil || o.Changed(flag)
}

// Build resolves the options into a request.
func (o RequestOptions) Build(catalog *config.Catalog) (domain.ComparisonRequest, error) {
	var req domain.ComparisonRequest
	if o.Preset != "" {
		p, err := catalog.Get(o.Preset)
		if err != nil {
			return req, err
		}
		if req, err = p.Request(); err != nil {
			return req, err
		}
	} else {
		req.Algorithms = append([]string(nil), config.DefaultAlgorithms...)
	}

	fromFlags := o.Preset == ""
	if fromFlags || o.changed("width") {
		req.Width = o.Width
	}
	if fromFlags || o.changed("height") {
		req.Height = o.Height
	}
	if fromFlags || o.changed("start") {
		c, err := ParseCoordinate(o.Start)
		if err != nil {
			return req, &domain.InvalidRequestError{Field: "start", Reason: err.Error()}
		}
		req.Start = c
	}
	switch {
	case o.End != "" && (fromFlags || o.changed("end")):
		c, err := ParseCoordinate(o.End)
		if err != nil {
			return req, &domain.InvalidRequestError{Field: "end", Reason: err.Error()}
		}
		req.End = c
	case fromFlags:
		req.End = domain.C(req.Height-1, req.Width-1)
	}
	if fromFlags || o.changed("obstacles") {
		obstacles, err := ParseCoordinates(o.Obstacles)
		if err != nil {
			return req, &domain.InvalidRequestError{Field: "obstacles", Reason: err.Error()}
		}
		if fromFlags {
			req.Obstacles = obstacles
		} else {
			req.Obstacles = append(req.Obstacles, obstacles...)
		}
	}
	if fromFlags || o.changed("diagonal") {
		req.AllowDiagonal = o.Diagonal
	}
	if o.Density > 0 && (fromFlags || o.changed("density")) {
		d := o.Density
		req.Density = &d
	}
	if fromFlags || o.changed("seed") {
		req.Seed = o.Seed
	}
	if len(o.Algorithms) > 0 && (fromFlags || o.changed("algorithms")) {
		req.Algorithms = append([]string(nil), o.Algorithms...)
	}
	return req, nil
}

// RunCompare runs one comparison and prints it in format.
func RunCompare(ctx context.Context, a *App, w io.Writer, opts RequestOptions, format string) error {
	req, err := opts.Build(a.Catalog)
	if err != nil {
		return err
	}
	res, err := a.Comparator().Compare(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(w, format, render.Report(res), res)
}

// writeOutput prints v as JSON, md as raw markdown, or md rendered for
// the terminal.
func writeOutput(w io.Writer, format, md string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatMarkdown:
		_, err := io.WriteString(w, md)
		return err
	case FormatTable, "":
		r, err := render.NewMarkdown(terminalWidth(w))
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatTable, FormatJSON, FormatMarkdown)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth is the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
