// Package locator finds or creates the pane next to a reference pane.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timvw/helix-panes/internal/model"
	"github.com/timvw/helix-panes/internal/mux"
	telem "github.com/timvw/helix-panes/internal/otel"
)

// Locator implements get-or-create for adjacent panes. Repeated calls with
// the same reference pane and direction return the same pane: a split only
// happens when the multiplexer reports no neighbor.
type Locator struct {
	Mux     mux.Multiplexer
	Metrics *telem.Metrics
}

// New creates a Locator.
func New(m mux.Multiplexer, metrics *telem.Metrics) *Locator {
	return &Locator{Mux: m, Metrics: metrics}
}

// Locate returns the pane adjacent to ref in direction dir, splitting ref
// to create one if none exists. percent sizes a newly created pane; it is
// ignored when the pane already exists.
func (l *Locator) Locate(ctx context.Context, ref string, dir model.Direction, percent int) (string, error) {
	id, err := l.Mux.Neighbor(ctx, ref, dir)
	if err == nil {
		slog.Debug("reusing neighbor pane", "ref", ref, "dir", dir, "pane", id)
		return id, nil
	}
	if !errors.Is(err, mux.ErrNoNeighbor) {
		return "", fmt.Errorf("find %s neighbor of pane %s: %w", dir, ref, err)
	}

	id, err = l.Mux.SplitPane(ctx, ref, dir, percent)
	if err != nil {
		return "", fmt.Errorf("split pane %s %s: %w", ref, dir, err)
	}
	l.Metrics.RecordPaneCreated(ctx, string(dir))
	slog.Info("created pane", "ref", ref, "dir", dir, "pane", id, "percent", percent)
	return id, nil
}
