package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/timvw/helix-panes/internal/model"
)

// ErrNoStatusLine is matched (via errors.Is) by every StatusError.
var ErrNoStatusLine = errors.New("no editor status line found")

// StatusError reports that no line of the screen text looked like an editor
// status line.
type StatusError struct {
	// Lines is the number of screen lines examined.
	Lines int
	// Candidates counts lines that had a mode indicator but failed a later
	// step (usually a missing line number).
	Candidates int
}

func (e *StatusError) Error() string {
	if e.Candidates > 0 {
		return fmt.Sprintf("%v: %d of %d lines had a mode indicator but no filename and line number",
			ErrNoStatusLine, e.Candidates, e.Lines)
	}
	return fmt.Sprintf("%v in %d lines of screen text", ErrNoStatusLine, e.Lines)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNoStatusLine
}

// modeIndicators lists the mode names the editor renders, long forms first
// so that "NORMAL" is not read as "NOR" followed by "MAL".
var modeIndicators = []string{"NORMAL", "INSERT", "SELECT", "NOR", "INS", "SEL"}

// ParseStatus finds the first status line in screen and returns the file
// and cursor line it shows. A status line is:
//
//	<mode> <decorations>* <filename> ... │ <line>[:<column>] ...
//
// where mode is one of modeIndicators and decorations are tokens made only
// of Braille or private-use glyphs (spinners, rulers). The column is
// discarded and the line is returned as text.
func ParseStatus(screen string) (model.EditorContext, error) {
	lines := strings.Split(screen, "\n")
	candidates := 0
	for _, line := range lines {
		filename, lineNo, sawMode := matchStatusLine(line)
		if filename != "" {
			return model.NewEditorContext(filename, lineNo), nil
		}
		if sawMode {
			candidates++
		}
	}
	return model.EditorContext{}, &StatusError{Lines: len(lines), Candidates: candidates}
}

// matchStatusLine tries every mode indicator occurrence in line, left to
// right, and returns the first complete match. sawMode reports whether any
// indicator was found at all.
func matchStatusLine(line string) (filename, lineNo string, sawMode bool) {
	runes := []rune(line)
	for start := 0; start < len(runes); start++ {
		pos, ok := matchMode(runes, start)
		if !ok {
			continue
		}
		sawMode = true
		pos = skipDecorations(runes, pos)
		name, pos, ok := scanFilename(runes, pos)
		if !ok {
			continue
		}
		if n, ok := scanLineNumber(runes, pos); ok {
			return name, n, true
		}
	}
	return "", "", sawMode
}

// matchMode matches a mode indicator at start, followed by at least one
// whitespace rune. The indicator must not continue a word. Returns the
// position just past the indicator.
func matchMode(runes []rune, start int) (int, bool) {
	if start > 0 && isWordRune(runes[start-1]) {
		return 0, false
	}
	for _, mode := range modeIndicators {
		end := start + len(mode)
		if end >= len(runes) || string(runes[start:end]) != mode {
			continue
		}
		if unicode.IsSpace(runes[end]) {
			return end, true
		}
	}
	return 0, false
}

// skipDecorations skips whitespace and whole decoration tokens. A run of
// glyphs is only skipped when whitespace follows it, so a filename that
// happens to start with a glyph is left intact.
func skipDecorations(runes []rune, pos int) int {
	for {
		pos = skipSpace(runes, pos)
		end := pos
		for end < len(runes) && isDecoration(runes[end]) {
			end++
		}
		if end == pos || end >= len(runes) || !unicode.IsSpace(runes[end]) {
			return pos
		}
		pos = end
	}
}

// scanFilename reads a non-empty run of non-whitespace runes that is
// followed by whitespace. A run made only of separators is not a filename.
func scanFilename(runes []rune, pos int) (string, int, bool) {
	end := pos
	onlySeparators := true
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		if !isSeparator(runes[end]) {
			onlySeparators = false
		}
		end++
	}
	if end == pos || end >= len(runes) || onlySeparators {
		return "", pos, false
	}
	return string(runes[pos:end]), end, true
}

// scanLineNumber finds the first separator after pos that is followed
// (after optional whitespace) by a digit run, and returns that run. An
// optional ":<digits>" column and anything after it are ignored.
func scanLineNumber(runes []rune, pos int) (string, bool) {
	for i := pos; i < len(runes); i++ {
		if !isSeparator(runes[i]) {
			continue
		}
		j := skipSpace(runes, i+1)
		end := j
		for end < len(runes) && isDigit(runes[end]) {
			end++
		}
		if end > j {
			return string(runes[j:end]), true
		}
	}
	return "", false
}

func skipSpace(runes []rune, pos int) int {
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

// isDecoration reports Braille patterns (U+2800–U+28FF) and Private Use
// Area glyphs (U+E000–U+F8FF, where icon fonts live).
func isDecoration(r rune) bool {
	return (r >= 0x2800 && r <= 0x28FF) || (r >= 0xE000 && r <= 0xF8FF)
}

func isSeparator(r rune) bool {
	return r == '│' || r == '┃' || r == '|'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
