package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pathrace/internal/config"
)

// presetsMarkdown lists the catalog as a markdown table.
func presetsMarkdown(catalog *config.Catalog) string {
	var b strings.Builder
	b.WriteString("# Presets\n\n")
	b.WriteString("| Name | Size | Start | End | Diagonal | Algorithms | Description |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, p := range catalog.List() {
		fmt.Fprintf(&b, "| %s | %dx%d | %s | %s | %t | %s | %s |\n",
			p.Name, p.Width, p.Height, p.Start, p.End, p.AllowDiagonal,
			strings.Join(p.Algorithms, ", "), p.Description)
	}
	return b.String()
}

// ListPresets prints the catalog in format.
func ListPresets(w io.Writer, catalog *config.Catalog, format string) error {
	return writeOutput(w, format, presetsMarkdown(catalog), catalog.List())
}
