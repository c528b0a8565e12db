package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// Report formats a comparison as markdown: the grid, then one table row
// per algorithm in request order.
func Report(res *domain.ComparisonResult) string {
	var b strings.Builder
	g := res.Grid
	fmt.Fprintf(&b, "# Comparison\n\n")
	fmt.Fprintf(&b, "Grid %dx%d, start %s, end %s, %d obstacles",
		g.Width(), g.Height(), g.Start(), g.End(), len(g.Obstacles()))
	if g.AllowDiagonal() {
		b.WriteString(", diagonal moves")
	}
	b.WriteString(".\n\n")

	b.WriteString("| Algorithm | Path | Length | Cost | Visited | Explored | Steps | Time (ms) |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
	for _, a := range res.Algorithms {
		if a.Failed() {
			fmt.Fprintf(&b, "| %s | error: %s | | | | | | |\n", a.Name, escapeCell(a.Error))
			continue
		}
		m := a.Metrics
		found := "none"
		if m.PathFound {
			found = "found"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %.3f | %d | %d | %d | %.3f |\n",
			a.Name, found, m.PathLength, m.PathCost, m.NodesVisited, m.NodesExplored,
			a.StepCount(), m.ExecutionTime*1000)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Markdown renders markdown for the terminal with glamour.
type Markdown struct {
	r *glamour.TermRenderer
}

// NewMarkdown creates a renderer wrapping at width columns; 0 keeps
// glamour's default. The style follows the terminal background.
func NewMarkdown(width int) (*Markdown, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Markdown{r: r}, nil
}

// Render returns the styled text of markdown.
func (m *Markdown) Render(markdown string) (string, error) {
	return m.r.Render(markdown)
}
