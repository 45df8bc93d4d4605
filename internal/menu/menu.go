// Package menu is an interactive picker over the available actions.
package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/timvw/helix-panes/internal/action"
)

// Menu lists items and lets the user pick one.
type Menu struct {
	Items []action.Item
	Theme Theme
}

// Run shows the menu until an item is chosen or the user cancels. ok is
// false on cancel.
func (mn *Menu) Run(ctx context.Context) (action.Item, bool, error) {
	m := newModel(mn.Items, mn.Theme)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return action.Item{}, false, fmt.Errorf("menu: %w", err)
	}
	fm := final.(*menuModel)
	if fm.chosen == nil {
		return action.Item{}, false, nil
	}
	return *fm.chosen, true, nil
}

type menuModel struct {
	items    []action.Item
	visible  []int // indexes into items matching the filter
	cursor   int
	filter   textinput.Model
	styles   styles
	chosen   *action.Item
	quitting bool

	width  int
	height int
}

func newModel(items []action.Item, theme Theme) *menuModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()

	m := &menuModel{
		items:  items,
		filter: ti,
		styles: newStyles(theme),
		width:  80,
	}
	m.applyFilter()
	return m
}

func (m *menuModel) Init() tea.Cmd {
	return textinput.Blink
}

// applyFilter keeps the items whose title or description contains every
// word of the filter, case-insensitively.
func (m *menuModel) applyFilter() {
	words := strings.Fields(strings.ToLower(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, item := range m.items {
		hay := strings.ToLower(item.Title() + " " + item.Description)
		match := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				match = false
				break
			}
		}
		if match {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *menuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "q":
		if m.filter.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		item := m.items[m.visible[m.cursor]]
		m.chosen = &item
		return m, tea.Quit
	case "up", "ctrl+p", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *menuModel) View() string {
	if m.chosen != nil || m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("helix-panes"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(m.styles.header.Render(strings.Repeat("─", max(0, min(m.width, 60)))))
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(m.styles.err.Render("  no matching action"))
		b.WriteString("\n")
	}

	titleWidth := 0
	for _, i := range m.visible {
		titleWidth = max(titleWidth, runewidth.StringWidth(m.items[i].Title()))
	}
	descWidth := max(10, m.width-titleWidth-6)

	for row, i := range m.visible {
		item := m.items[i]
		title := padRight(item.Title(), titleWidth)
		desc := runewidth.Truncate(item.Description, descWidth, "…")
		if row == m.cursor {
			line := m.styles.selected.Render("▸ " + title)
			b.WriteString(line + "  " + m.styles.text.Render(desc))
		} else {
			b.WriteString("  " + m.styles.text.Render(title) + "  " + m.styles.dim.Render(desc))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.hints())
	return b.String()
}

func (m *menuModel) hints() string {
	pairs := [][2]string{{"↑/↓", "move"}, {"enter", "run"}, {"esc", "cancel"}}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, m.styles.hintKey.Render(p[0])+" "+m.styles.hintDesc.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
