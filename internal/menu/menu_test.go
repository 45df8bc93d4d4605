package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/timvw/helix-panes/internal/action"
	"github.com/timvw/helix-panes/internal/layout"
)

func newTestModel() *menuModel {
	return newModel(action.Catalog(layout.DefaultPresets()), DarkTheme())
}

func typeText(m *menuModel, s string) {
	for _, r := range s {
		m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestEnterChoosesSelected(t *testing.T) {
	m := newTestModel()
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.chosen == nil {
		t.Fatal("expected an item to be chosen")
	}
	if m.chosen.Action != "check" {
		t.Errorf("chosen: got %q, want %q", m.chosen.Action, "check")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel()
	m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
	for i := 0; i < 20; i++ {
		m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.visible)-1 {
		t.Errorf("cursor: got %d, want %d", m.cursor, len(m.visible)-1)
	}
}

func TestFilter(t *testing.T) {
	m := newTestModel()
	typeText(m, "layout small")

	if len(m.visible) != 1 {
		t.Fatalf("visible: got %d, want 1", len(m.visible))
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.chosen == nil || m.chosen.Title() != "layout small-terminal" {
		t.Errorf("chosen: got %+v", m.chosen)
	}
}

func TestFilterNoMatch(t *testing.T) {
	m := newTestModel()
	typeText(m, "zzz")

	if len(m.visible) != 0 {
		t.Fatalf("visible: got %d, want 0", len(m.visible))
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.chosen != nil {
		t.Error("enter with no match must not choose")
	}
	if !strings.Contains(m.View(), "no matching action") {
		t.Error("view should say nothing matches")
	}
}

func TestCancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		m := newTestModel()
		_, cmd := m.handleKey(key)
		if !m.quitting || m.chosen != nil || cmd == nil {
			t.Errorf("%s: expected cancel", key.String())
		}
	}
}

func TestQTypesIntoFilterWhenNotEmpty(t *testing.T) {
	m := newTestModel()
	typeText(m, "blame")
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.quitting {
		t.Error("q with a filter should be typed, not quit")
	}
	if m.filter.Value() != "blameq" {
		t.Errorf("filter: got %q", m.filter.Value())
	}
}

func TestViewTruncatesDescriptions(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	view := m.View()
	if !strings.Contains(view, "…") {
		t.Error("expected truncated descriptions in a narrow window")
	}
	if !strings.Contains(view, "explorer") {
		t.Error("expected action titles in view")
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight: got %q", got)
	}
	if got := padRight("日本", 4); got != "日本" {
		t.Errorf("padRight wide: got %q", got)
	}
}
