package mux

import "fmt"

// DetectName names the multiplexer hosting the current process, judged
// from the environment. tmux wins when both are present: a tmux running
// inside a wezterm pane is the inner multiplexer that owns the editor's pane.
func DetectName(getenv func(string) string) (string, error) {
	if getenv("TMUX") != "" && getenv("TMUX_PANE") != "" {
		return "tmux", nil
	}
	if getenv("WEZTERM_PANE") != "" {
		return "wezterm", nil
	}
	return "", fmt.Errorf("no supported terminal multiplexer detected (set $WEZTERM_PANE or $TMUX, or pass --mux)")
}

// FromName creates a Multiplexer by name.
func FromName(name string, opts Options) (Multiplexer, error) {
	switch name {
	case "wezterm":
		return NewWezTerm(opts), nil
	case "tmux":
		return NewTmux(opts), nil
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: wezterm, tmux)", name)
	}
}

// ReferencePane reads and validates the invoking pane's id from the
// variable named by m.PaneEnv().
func ReferencePane(m Multiplexer, getenv func(string) string) (string, error) {
	name := m.PaneEnv()
	raw := getenv(name)
	if raw == "" {
		return "", &EnvError{Var: name}
	}
	id, err := m.ParsePaneID(raw)
	if err != nil {
		return "", &EnvError{Var: name, Value: raw, Err: err}
	}
	return id, nil
}
