package menu

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by the menu.
type Theme struct {
	Primary        lipgloss.Color // title, cursor
	Secondary      lipgloss.Color // selected entry
	Error          lipgloss.Color
	Text           lipgloss.Color
	TextMuted      lipgloss.Color // descriptions, hints
	BackgroundElem lipgloss.Color // selected row background
	Border         lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:        lipgloss.Color("#fab283"),
		Secondary:      lipgloss.Color("#5c9cf5"),
		Error:          lipgloss.Color("#e06c75"),
		Text:           lipgloss.Color("#eeeeee"),
		TextMuted:      lipgloss.Color("#808080"),
		BackgroundElem: lipgloss.Color("#1e1e1e"),
		Border:         lipgloss.Color("#484848"),
	}
}

// LightTheme returns a theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:        lipgloss.Color("#b35c00"),
		Secondary:      lipgloss.Color("#0550ae"),
		Error:          lipgloss.Color("#cf222e"),
		Text:           lipgloss.Color("#1f2328"),
		TextMuted:      lipgloss.Color("#656d76"),
		BackgroundElem: lipgloss.Color("#f6f8fa"),
		Border:         lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	err      lipgloss.Style
	hintKey  lipgloss.Style
	hintDesc lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header:   lipgloss.NewStyle().Foreground(t.Border),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.BackgroundElem),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		hintKey:  lipgloss.NewStyle().Foreground(t.Text),
		hintDesc: lipgloss.NewStyle().Foreground(t.TextMuted),
	}
}
