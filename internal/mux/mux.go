// Package mux drives terminal multiplexers (wezterm, tmux) through their
// command-line control interfaces.
//
// Every operation is one synchronous request/response exchange with the
// multiplexer binary. Nothing is cached: pane state is re-read on every call.
package mux

import (
	"context"

	"github.com/timvw/helix-panes/internal/model"
)

// Multiplexer abstracts terminal multiplexer operations.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "wezterm", "tmux").
	Name() string

	// PaneEnv is the environment variable carrying the invoking pane's id.
	PaneEnv() string

	// ParsePaneID validates a pane id in this multiplexer's format.
	ParsePaneID(s string) (string, error)

	// ListPanes returns the panes the multiplexer reports. Malformed rows
	// are skipped.
	ListPanes(ctx context.Context) ([]model.Pane, error)

	// Neighbor returns the pane adjacent to paneID in direction dir.
	// Returns ErrNoNeighbor when there is none.
	Neighbor(ctx context.Context, paneID string, dir model.Direction) (string, error)

	// SplitPane splits paneID, placing the new pane in direction dir, and
	// returns the new pane's id. percent <= 0 uses the multiplexer default.
	SplitPane(ctx context.Context, paneID string, dir model.Direction, percent int) (string, error)

	// ResizePane moves the edge of paneID facing dir by amount cells.
	ResizePane(ctx context.Context, paneID string, dir model.Direction, amount int) error

	// FocusPane makes paneID the active pane.
	FocusPane(ctx context.Context, paneID string) error

	// InjectText types text followed by a newline into paneID as literal
	// keystrokes, not as a bracketed paste.
	InjectText(ctx context.Context, paneID, text string) error

	// ReadScreenText returns the rendered text of paneID with escape
	// sequences removed. An empty paneID reads the active pane.
	ReadScreenText(ctx context.Context, paneID string) (string, error)
}

// FindPane returns the pane with the given id from a listing.
func FindPane(panes []model.Pane, id string) (model.Pane, bool) {
	for _, p := range panes {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pane{}, false
}
