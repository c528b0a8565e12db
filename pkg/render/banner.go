package render

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`              _   _                         `, "#818cf8"},
	{`  _ __   __ _| |_| |__  _ __ __ _  ___ ___  `, "#a78bfa"},
	{` | '_ \ / _' | __| '_ \| '__/ _' |/ __/ _ \ `, "#c084fc"},
	{` | |_) | (_| | |_| | | | | | (_| | (_|  __/ `, "#e879f9"},
	{` | .__/ \__,_|\__|_| |_|_|  \__,_|\___\___| `, "#f472b6"},
	{` |_|                                        `, "#fb7185"},
}

// Banner writes the ASCII art banner in a gradient.
func Banner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(out)
}
