package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathrace/pkg/playback"
)

const (
	minPanelWidth = 20
	gutter        = 2
)

// panelWidth is the number of columns one panel occupies.
func panelWidth(f *playback.Frame) int {
	return max(f.Width, minPanelWidth)
}

// statusLine describes the global cursor.
func statusLine(f *playback.Frame) string {
	return fmt.Sprintf("step %d/%d  speed %dx  %s", f.Step, f.Max, f.Speed, f.Status)
}

// panelStats are the text lines under a panel's grid.
func panelStats(p *playback.PanelFrame) []string {
	lines := []string{
		fmt.Sprintf("step %d/%d", p.StepIndex, p.MaxIndex),
		fmt.Sprintf("visited %d", p.Visited),
		fmt.Sprintf("frontier %d", p.Frontier),
	}
	switch {
	case p.Error != "":
		lines = append(lines, "error: "+p.Error)
	case !p.Done:
		lines = append(lines, "searching")
	case p.Metrics.PathFound:
		lines = append(lines, fmt.Sprintf("path %d  cost %.2f", p.PathLength, p.Metrics.PathCost))
	default:
		lines = append(lines, "no path")
	}
	return lines
}

// statsHeight is the tallest stats block of a frame.
func statsHeight(f *playback.Frame) int {
	n := 0
	for i := range f.Panels {
		n = max(n, len(panelStats(&f.Panels[i])))
	}
	return n
}

// fit truncates or pads s to exactly w runes.
func fit(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
