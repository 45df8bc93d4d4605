package mux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/timvw/helix-panes/internal/model"
)

// listFormat yields: pane_id width height left top current_command
const listFormat = "#{pane_id} #{pane_width} #{pane_height} #{pane_left} #{pane_top} #{pane_current_command}"

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	commander
}

// NewTmux creates a new tmux multiplexer.
func NewTmux(opts Options) *Tmux {
	return &Tmux{commander: newCommander("tmux", "tmux", opts)}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// PaneEnv returns "TMUX_PANE".
func (t *Tmux) PaneEnv() string {
	return "TMUX_PANE"
}

// ParsePaneID accepts ids of the form "%N".
func (t *Tmux) ParsePaneID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "%") {
		return "", fmt.Errorf("tmux pane id must start with '%%', got %q", s)
	}
	if _, err := strconv.ParseUint(s[1:], 10, 64); err != nil {
		return "", fmt.Errorf("tmux pane id must be %%N: %w", err)
	}
	return s, nil
}

// ListPanes returns the panes of the current window.
func (t *Tmux) ListPanes(ctx context.Context) ([]model.Pane, error) {
	return t.listPanes(ctx, "")
}

func (t *Tmux) listPanes(ctx context.Context, target string) ([]model.Pane, error) {
	args := []string{"list-panes"}
	if target != "" {
		args = append(args, "-t", target)
	}
	args = append(args, "-F", listFormat)
	out, err := t.run(ctx, "list-panes", args...)
	if err != nil {
		return nil, err
	}
	return parseTmuxList(out), nil
}

// parseTmuxList parses rows produced by listFormat, skipping short or
// malformed rows. The command column may be empty.
func parseTmuxList(out string) []model.Pane {
	var panes []model.Pane
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "%") {
			continue
		}
		nums := make([]int, 4)
		ok := true
		for i := range nums {
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 0 {
				ok = false
				break
			}
			nums[i] = n
		}
		if !ok {
			continue
		}
		pane := model.Pane{
			ID:     fields[0],
			Width:  nums[0],
			Height: nums[1],
			Left:   nums[2],
			Top:    nums[3],
		}
		if len(fields) > 5 {
			pane.Command = fields[5]
		}
		panes = append(panes, pane)
	}
	return panes
}

// Neighbor finds the adjacent pane from the window geometry: tmux has no
// direct query for it.
func (t *Tmux) Neighbor(ctx context.Context, paneID string, dir model.Direction) (string, error) {
	if _, err := tmuxDirectionFlag(dir); err != nil {
		return "", err
	}
	panes, err := t.listPanes(ctx, paneID)
	if err != nil {
		return "", err
	}
	ref, ok := FindPane(panes, paneID)
	if !ok {
		return "", fmt.Errorf("tmux pane %s not found in its window", paneID)
	}
	if id := adjacentPane(panes, ref, dir); id != "" {
		return id, nil
	}
	return "", ErrNoNeighbor
}

// adjacentPane returns the pane sharing ref's edge in direction dir.
// Adjacent panes are one separator cell apart. When several panes touch
// the edge, the one with the largest overlap wins.
func adjacentPane(panes []model.Pane, ref model.Pane, dir model.Direction) string {
	best, bestOverlap := "", 0
	for _, p := range panes {
		if p.ID == ref.ID {
			continue
		}
		var touches bool
		var overlap int
		switch dir {
		case model.Right:
			touches = p.Left == ref.Right()+1
			overlap = span(ref.Top, ref.Bottom(), p.Top, p.Bottom())
		case model.Left:
			touches = p.Right()+1 == ref.Left
			overlap = span(ref.Top, ref.Bottom(), p.Top, p.Bottom())
		case model.Down:
			touches = p.Top == ref.Bottom()+1
			overlap = span(ref.Left, ref.Right(), p.Left, p.Right())
		case model.Up:
			touches = p.Bottom()+1 == ref.Top
			overlap = span(ref.Left, ref.Right(), p.Left, p.Right())
		}
		if touches && overlap > bestOverlap {
			best, bestOverlap = p.ID, overlap
		}
	}
	return best
}

// span returns the length of the intersection of [a0,a1) and [b0,b1).
func span(a0, a1, b0, b1 int) int {
	lo, hi := max(a0, b0), min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// SplitPane runs `tmux split-window` and returns the new pane id.
func (t *Tmux) SplitPane(ctx context.Context, paneID string, dir model.Direction, percent int) (string, error) {
	args := []string{"split-window"}
	switch dir {
	case model.Right:
		args = append(args, "-h")
	case model.Left:
		args = append(args, "-h", "-b")
	case model.Down:
		args = append(args, "-v")
	case model.Up:
		args = append(args, "-v", "-b")
	default:
		return "", fmt.Errorf("unsupported direction %q", dir)
	}
	args = append(args, "-t", paneID)
	if percent > 0 {
		args = append(args, "-l", strconv.Itoa(percent)+"%")
	}
	args = append(args, "-P", "-F", "#{pane_id}")

	out, err := t.run(ctx, "split-window", args...)
	if err != nil {
		return "", err
	}
	id, err := t.ParsePaneID(out)
	if err != nil {
		return "", unexpectedOutput(t.bin, args, out)
	}
	return id, nil
}

// ResizePane runs `tmux resize-pane`.
func (t *Tmux) ResizePane(ctx context.Context, paneID string, dir model.Direction, amount int) error {
	if amount < 0 {
		return fmt.Errorf("resize amount must be non-negative, got %d", amount)
	}
	flag, err := tmuxDirectionFlag(dir)
	if err != nil {
		return err
	}
	_, err = t.run(ctx, "resize-pane", "resize-pane", "-t", paneID, flag, strconv.Itoa(amount))
	return err
}

// FocusPane runs `tmux select-pane`.
func (t *Tmux) FocusPane(ctx context.Context, paneID string) error {
	_, err := t.run(ctx, "select-pane", "select-pane", "-t", paneID)
	return err
}

// InjectText types text in literal mode (-l) and then presses Enter, the
// tmux equivalent of a trailing newline.
func (t *Tmux) InjectText(ctx context.Context, paneID, text string) error {
	if _, err := t.run(ctx, "send-keys", "send-keys", "-t", paneID, "-l", text); err != nil {
		return err
	}
	_, err := t.run(ctx, "send-keys", "send-keys", "-t", paneID, "Enter")
	return err
}

// ReadScreenText captures the visible content of a tmux pane.
// Uses -p (stdout) and -J (joined, unwraps lines).
func (t *Tmux) ReadScreenText(ctx context.Context, paneID string) (string, error) {
	args := []string{"capture-pane", "-p", "-J"}
	if paneID != "" {
		args = append(args, "-t", paneID)
	}
	out, err := t.run(ctx, "capture-pane", args...)
	if err != nil {
		return "", err
	}
	return ansi.Strip(out), nil
}

func tmuxDirectionFlag(dir model.Direction) (string, error) {
	switch dir {
	case model.Left:
		return "-L", nil
	case model.Right:
		return "-R", nil
	case model.Up:
		return "-U", nil
	case model.Down:
		return "-D", nil
	}
	return "", fmt.Errorf("unsupported direction %q", dir)
}
