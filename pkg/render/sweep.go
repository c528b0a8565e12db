package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathrace/pkg/domain"
)

// SweepReport formats a benchmark sweep as markdown: a summary row per
// algorithm followed by every individual run.
func SweepReport(res *domain.SweepResult) string {
	var b strings.Builder
	b.WriteString("# Benchmark\n\n")

	sizes := make([]string, len(res.Sizes))
	for i, s := range res.Sizes {
		sizes[i] = fmt.Sprintf("%dx%d", s, s)
	}
	densities := make([]string, len(res.Densities))
	for i, d := range res.Densities {
		densities[i] = fmt.Sprintf("%.2f", d)
	}
	fmt.Fprintf(&b, "Grids %s, obstacle densities %s, seed %d.\n\n",
		strings.Join(sizes, ", "), strings.Join(densities, ", "), res.Seed)

	b.WriteString("| Algorithm | Runs | Success | Avg time (ms) | Avg visited | Avg length |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, a := range res.Algorithms {
		fmt.Fprintf(&b, "| %s | %d | %.0f%% | %.3f | %.1f | %.1f |\n",
			a.Algorithm, a.Runs, a.SuccessRate*100, a.AvgTime*1000, a.AvgVisited, a.AvgPathLength)
	}

	b.WriteString("\n## Runs\n\n")
	b.WriteString("| Algorithm | Grid | Density | Path | Length | Visited | Time (ms) |\n")
	b.WriteString("|---|---|---:|---|---:|---:|---:|\n")
	for _, a := range res.Algorithms {
		for _, r := range a.Cases {
			found := "none"
			switch {
			case r.Error != "":
				found = "error: " + escapeCell(r.Error)
			case r.Metrics.PathFound:
				found = "found"
			}
			fmt.Fprintf(&b, "| %s | %dx%d | %.2f | %s | %d | %d | %.3f |\n",
				a.Algorithm, r.Size, r.Size, r.Density, found,
				r.Metrics.PathLength, r.Metrics.NodesVisited, r.Metrics.ExecutionTime*1000)
		}
	}
	return b.String()
}
