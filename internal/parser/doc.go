// Package parser recovers structured editor context from the rendered text
// of a terminal pane.
//
// The screen text is whatever the multiplexer reports for the pane: the
// editor's buffer, gutters, popups and its status line, including the box
// drawing and Braille glyphs used as UI chrome. The parser does not rely on
// the position of the status line on screen; it scans line by line and
// returns the first line with the status shape.
package parser
