package mux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/timvw/helix-panes/internal/model"
)

// minListFields is the number of whitespace-separated columns a
// `wezterm cli list` row needs: WINID TABID PANEID WORKSPACE SIZE TITLE.
const minListFields = 6

// WezTerm implements the Multiplexer interface on top of `wezterm cli`.
type WezTerm struct {
	commander
}

// NewWezTerm creates a wezterm multiplexer.
func NewWezTerm(opts Options) *WezTerm {
	return &WezTerm{commander: newCommander("wezterm", "wezterm", opts)}
}

// Name returns "wezterm".
func (w *WezTerm) Name() string {
	return "wezterm"
}

// PaneEnv returns "WEZTERM_PANE".
func (w *WezTerm) PaneEnv() string {
	return "WEZTERM_PANE"
}

// ParsePaneID accepts a non-negative decimal pane id.
func (w *WezTerm) ParsePaneID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return "", fmt.Errorf("wezterm pane id must be a non-negative integer: %w", err)
	}
	return s, nil
}

// ListPanes parses the tabular output of `wezterm cli list`.
func (w *WezTerm) ListPanes(ctx context.Context) ([]model.Pane, error) {
	out, err := w.cli(ctx, "list")
	if err != nil {
		return nil, err
	}
	return parseWezTermList(out), nil
}

// parseWezTermList turns `wezterm cli list` output into panes. The header
// row and any row that does not have a numeric pane id and a COLSxROWS size
// are skipped.
func parseWezTermList(out string) []model.Pane {
	var panes []model.Pane
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < minListFields {
			continue
		}
		if _, err := strconv.ParseUint(fields[2], 10, 64); err != nil {
			continue
		}
		cols, rows, ok := parseSize(fields[4])
		if !ok {
			continue
		}
		panes = append(panes, model.Pane{
			ID:      fields[2],
			Width:   cols,
			Height:  rows,
			Command: fields[5],
		})
	}
	return panes
}

// parseSize parses "COLSxROWS".
func parseSize(s string) (cols, rows int, ok bool) {
	c, r, found := strings.Cut(s, "x")
	if !found {
		return 0, 0, false
	}
	cols, err := strconv.Atoi(c)
	if err != nil || cols < 0 {
		return 0, 0, false
	}
	rows, err = strconv.Atoi(r)
	if err != nil || rows < 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// Neighbor runs `wezterm cli get-pane-direction`. Empty output means there
// is no pane in that direction.
func (w *WezTerm) Neighbor(ctx context.Context, paneID string, dir model.Direction) (string, error) {
	name, err := wezDirection(dir)
	if err != nil {
		return "", err
	}
	args := []string{"get-pane-direction", "--pane-id", paneID, name}
	out, err := w.cli(ctx, args...)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", ErrNoNeighbor
	}
	if _, err := w.ParsePaneID(id); err != nil {
		return "", unexpectedOutput(w.bin, append([]string{"cli"}, args...), out)
	}
	return id, nil
}

// SplitPane runs `wezterm cli split-pane` and returns the new pane id.
func (w *WezTerm) SplitPane(ctx context.Context, paneID string, dir model.Direction, percent int) (string, error) {
	flag, err := wezSplitFlag(dir)
	if err != nil {
		return "", err
	}
	args := []string{"split-pane", "--pane-id", paneID, flag}
	if percent > 0 {
		args = append(args, "--percent", strconv.Itoa(percent))
	}
	out, err := w.cli(ctx, args...)
	if err != nil {
		return "", err
	}
	id, err := w.ParsePaneID(out)
	if err != nil {
		return "", unexpectedOutput(w.bin, append([]string{"cli"}, args...), out)
	}
	return id, nil
}

// ResizePane runs `wezterm cli adjust-pane-size`.
func (w *WezTerm) ResizePane(ctx context.Context, paneID string, dir model.Direction, amount int) error {
	if amount < 0 {
		return fmt.Errorf("resize amount must be non-negative, got %d", amount)
	}
	name, err := wezDirection(dir)
	if err != nil {
		return err
	}
	_, err = w.cli(ctx, "adjust-pane-size", "--pane-id", paneID, "--amount", strconv.Itoa(amount), name)
	return err
}

// FocusPane runs `wezterm cli activate-pane`.
func (w *WezTerm) FocusPane(ctx context.Context, paneID string) error {
	_, err := w.cli(ctx, "activate-pane", "--pane-id", paneID)
	return err
}

// InjectText runs `wezterm cli send-text --no-paste` with a trailing newline.
func (w *WezTerm) InjectText(ctx context.Context, paneID, text string) error {
	_, err := w.cli(ctx, "send-text", "--pane-id", paneID, "--no-paste", text+"\n")
	return err
}

// ReadScreenText runs `wezterm cli get-text`.
func (w *WezTerm) ReadScreenText(ctx context.Context, paneID string) (string, error) {
	args := []string{"get-text"}
	if paneID != "" {
		args = append(args, "--pane-id", paneID)
	}
	out, err := w.cli(ctx, args...)
	if err != nil {
		return "", err
	}
	return ansi.Strip(out), nil
}

func (w *WezTerm) cli(ctx context.Context, args ...string) (string, error) {
	return w.run(ctx, args[0], append([]string{"cli"}, args...)...)
}

func wezDirection(dir model.Direction) (string, error) {
	switch dir {
	case model.Left:
		return "Left", nil
	case model.Right:
		return "Right", nil
	case model.Up:
		return "Up", nil
	case model.Down:
		return "Down", nil
	}
	return "", fmt.Errorf("unsupported direction %q", dir)
}

func wezSplitFlag(dir model.Direction) (string, error) {
	switch dir {
	case model.Left:
		return "--left", nil
	case model.Right:
		return "--right", nil
	case model.Up:
		return "--top", nil
	case model.Down:
		return "--bottom", nil
	}
	return "", fmt.Errorf("unsupported direction %q", dir)
}
