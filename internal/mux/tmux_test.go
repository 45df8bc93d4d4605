package mux

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/timvw/helix-panes/internal/model"
)

// Three columns; the right column is split into two rows.
const tmuxList = `%0 40 50 0 0 broot
%1 100 50 41 0 hx
%2 58 20 142 0 fish
%3 58 29 142 21 tig
garbage line
%9 x 1 2 3 bash
%4 10 10 0 0
`

func TestParseTmuxList(t *testing.T) {
	panes := parseTmuxList(tmuxList)
	if len(panes) != 5 {
		t.Fatalf("expected 5 panes, got %d: %+v", len(panes), panes)
	}
	if panes[1] != (model.Pane{ID: "%1", Width: 100, Height: 50, Left: 41, Top: 0, Command: "hx"}) {
		t.Errorf("pane 1: got %+v", panes[1])
	}
	if panes[4].Command != "" {
		t.Errorf("missing command column should yield empty command, got %q", panes[4].Command)
	}
}

func TestAdjacentPane(t *testing.T) {
	panes := parseTmuxList(tmuxList)[:4]
	byID := map[string]model.Pane{}
	for _, p := range panes {
		byID[p.ID] = p
	}

	tests := []struct {
		ref  string
		dir  model.Direction
		want string
	}{
		{"%1", model.Left, "%0"},
		{"%1", model.Right, "%3"}, // larger vertical overlap than %2
		{"%0", model.Left, ""},
		{"%0", model.Right, "%1"},
		{"%2", model.Down, "%3"},
		{"%3", model.Up, "%2"},
		{"%2", model.Left, "%1"},
		{"%1", model.Up, ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref+"-"+string(tt.dir), func(t *testing.T) {
			if got := adjacentPane(panes, byID[tt.ref], tt.dir); got != tt.want {
				t.Errorf("adjacentPane(%s, %s) = %q, want %q", tt.ref, tt.dir, got, tt.want)
			}
		})
	}
}

func TestTmux_Neighbor(t *testing.T) {
	r := &scriptedRunner{replies: []reply{{out: tmuxList}, {out: tmuxList}}}
	tm := NewTmux(Options{Runner: r})
	ctx := context.Background()

	id, err := tm.Neighbor(ctx, "%1", model.Left)
	if err != nil {
		t.Fatalf("Neighbor() error: %v", err)
	}
	if id != "%0" {
		t.Errorf("id: got %q, want %%0", id)
	}
	if got := r.call(t, 0); !strings.HasPrefix(got, "tmux list-panes -t %1 -F ") {
		t.Errorf("command: got %q", got)
	}

	if _, err := tm.Neighbor(ctx, "%0", model.Left); !errors.Is(err, ErrNoNeighbor) {
		t.Errorf("expected ErrNoNeighbor, got %v", err)
	}
}

func TestTmux_SplitPane(t *testing.T) {
	tests := []struct {
		dir     model.Direction
		percent int
		want    string
	}{
		{model.Right, 0, "tmux split-window -h -t %1 -P -F #{pane_id}"},
		{model.Left, 20, "tmux split-window -h -b -t %1 -l 20% -P -F #{pane_id}"},
		{model.Down, 0, "tmux split-window -v -t %1 -P -F #{pane_id}"},
		{model.Up, 0, "tmux split-window -v -b -t %1 -P -F #{pane_id}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			r := &scriptedRunner{replies: []reply{{out: "%7\n"}}}
			tm := NewTmux(Options{Runner: r})
			id, err := tm.SplitPane(context.Background(), "%1", tt.dir, tt.percent)
			if err != nil {
				t.Fatalf("SplitPane() error: %v", err)
			}
			if id != "%7" {
				t.Errorf("id: got %q", id)
			}
			if got := r.call(t, 0); got != tt.want {
				t.Errorf("command: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTmux_SplitPaneGarbled(t *testing.T) {
	r := &scriptedRunner{replies: []reply{{out: "7"}}}
	tm := NewTmux(Options{Runner: r})
	if _, err := tm.SplitPane(context.Background(), "%1", model.Right, 0); !errors.Is(err, ErrUnexpectedOutput) {
		t.Fatalf("expected ErrUnexpectedOutput, got %v", err)
	}
}

func TestTmux_InjectText(t *testing.T) {
	r := &scriptedRunner{}
	tm := NewTmux(Options{Runner: r})

	if err := tm.InjectText(context.Background(), "%2", "cargo check"); err != nil {
		t.Fatalf("InjectText() error: %v", err)
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected 2 send-keys calls (literal, Enter), got %d", len(r.calls))
	}
	if got := r.call(t, 0); got != "tmux send-keys -t %2 -l cargo check" {
		t.Errorf("literal: got %q", got)
	}
	if got := r.call(t, 1); got != "tmux send-keys -t %2 Enter" {
		t.Errorf("enter: got %q", got)
	}
}

func TestTmux_ResizeAndFocus(t *testing.T) {
	r := &scriptedRunner{}
	tm := NewTmux(Options{Runner: r})
	ctx := context.Background()

	if err := tm.ResizePane(ctx, "%1", model.Right, 5); err != nil {
		t.Fatalf("ResizePane() error: %v", err)
	}
	if err := tm.FocusPane(ctx, "%1"); err != nil {
		t.Fatalf("FocusPane() error: %v", err)
	}
	if got := r.call(t, 0); got != "tmux resize-pane -t %1 -R 5" {
		t.Errorf("resize: got %q", got)
	}
	if got := r.call(t, 1); got != "tmux select-pane -t %1" {
		t.Errorf("focus: got %q", got)
	}
}

func TestTmux_ParsePaneID(t *testing.T) {
	tm := NewTmux(Options{})
	if id, err := tm.ParsePaneID("%12"); err != nil || id != "%12" {
		t.Errorf("ParsePaneID: got %q, %v", id, err)
	}
	for _, bad := range []string{"", "12", "%", "%x"} {
		if _, err := tm.ParsePaneID(bad); err == nil {
			t.Errorf("ParsePaneID(%q): expected error", bad)
		}
	}
}
