/*
Package render draws playback frames and comparison reports.

Three outputs share one palette and one panel layout:

  - ANSI writes frames as coloured text to any io.Writer, degrading to
    plain glyphs when the terminal has no colour support.
  - Screen draws onto a tcell.Screen, and Viewer turns key presses into
    playback controls.
  - Report formats a ComparisonResult as a markdown table, which
    Markdown renders for the terminal.
*/
package render
