package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Direction is a spatial relation between two panes.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// ParseDirection normalizes a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right, Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q (supported: left, right, up, down)", s)
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return d
}

// Pane represents a terminal multiplexer pane.
type Pane struct {
	// ID is the multiplexer's handle for the pane (e.g., "3" for wezterm, "%3" for tmux).
	ID string `json:"id"`
	// Width is the pane width in character cells.
	Width int `json:"width"`
	// Height is the pane height in character cells.
	Height int `json:"height"`
	// Left and Top are the pane's offset in cells. Only populated by
	// backends that report geometry.
	Left int `json:"left,omitempty"`
	Top  int `json:"top,omitempty"`
	// Command is the foreground program running in the pane (best-effort).
	Command string `json:"command"`
}

// Right returns the first column past the pane's right edge.
func (p Pane) Right() int { return p.Left + p.Width }

// Bottom returns the first row past the pane's bottom edge.
func (p Pane) Bottom() int { return p.Top + p.Height }

// EditorContext is the file and cursor line the editor currently shows.
type EditorContext struct {
	// Filename is taken verbatim from the status line.
	Filename string `json:"filename"`
	// Line is the 1-based cursor line, kept as text.
	Line string `json:"line"`

	Dir       string `json:"dir"`
	Base      string `json:"base"`
	Extension string `json:"extension"`
}

// NewEditorContext builds an EditorContext and fills the derived path fields.
func NewEditorContext(filename, line string) EditorContext {
	dir, base, ext := SplitPath(filename)
	return EditorContext{
		Filename:  filename,
		Line:      line,
		Dir:       dir,
		Base:      base,
		Extension: ext,
	}
}

// SplitPath splits a filename lexically into its parent directory, the base
// name up to its first dot, and the extension after its last dot. No
// filesystem access is performed.
//
//	"src/main.rs"     -> "src", "main", "rs"
//	"notes"           -> "",    "notes", ""
//	".gitignore"      -> "",    "",      "gitignore"
//	"a/archive.tar.gz"-> "a",   "archive", "gz"
func SplitPath(filename string) (dir, base, ext string) {
	if filename == "" {
		return "", "", ""
	}
	dir = filepath.Dir(filename)
	if dir == "." && !strings.HasPrefix(filename, "./") {
		dir = ""
	}
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return dir, "", ""
	}
	ext = strings.TrimPrefix(filepath.Ext(name), ".")
	base = name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		base = name[:i]
	}
	return dir, base, ext
}

// Match is a location picked in an interactive search tool, encoded as
// "path:line[:column[:...]]".
type Match struct {
	Path   string `json:"path"`
	Line   string `json:"line"`
	Column string `json:"column,omitempty"`
}

// ParseMatch decodes a "path:line:column:..." token. Path and line are
// required and line must be all digits; everything after the column is
// ignored.
func ParseMatch(token string) (Match, error) {
	parts := strings.SplitN(strings.TrimSpace(token), ":", 4)
	if len(parts) < 2 || parts[0] == "" {
		return Match{}, fmt.Errorf("invalid match %q: want path:line[:column]", token)
	}
	if !isDigits(parts[1]) {
		return Match{}, fmt.Errorf("invalid match %q: line %q is not a number", token, parts[1])
	}
	m := Match{Path: parts[0], Line: parts[1]}
	if len(parts) > 2 && isDigits(parts[2]) {
		m.Column = parts[2]
	}
	return m, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
