// Package layout converges a row of panes to target width percentages.
//
// Multiplexers resize a pane by moving an edge it shares with a neighbor,
// so a row of N panes is fixed by adjusting N-1 of them: the last pane
// absorbs the residual width and is never resized directly.
package layout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timvw/helix-panes/internal/model"
	"github.com/timvw/helix-panes/internal/mux"
	telem "github.com/timvw/helix-panes/internal/otel"
)

// Resize is one relative resize of a pane.
type Resize struct {
	PaneID string
	Dir    model.Direction
	Amount int
}

// CellsPerPercent is the integer number of cells one percent of total
// stands for, never less than 1.
func CellsPerPercent(total int) int {
	return max(1, total/100)
}

// Plan computes the resizes that move panes from widths toward percents of
// total. Every pane but the last gets at most one resize; panes already at
// their target get none. Percents need not sum to 100.
//
// Panes before the last adjusted one shrink to the left and grow to the
// right; the last adjusted pane shrinks to the right and grows to the left,
// so width is always traded with an immediate neighbor.
func Plan(paneIDs []string, percents, widths []int, total int) ([]Resize, error) {
	n := len(paneIDs)
	if n == 0 {
		return nil, fmt.Errorf("layout needs at least one pane")
	}
	if len(percents) != n || len(widths) != n {
		return nil, fmt.Errorf("layout size mismatch: %d panes, %d percents, %d widths", n, len(percents), len(widths))
	}
	for i, p := range percents {
		if p < 0 {
			return nil, fmt.Errorf("pane %s: negative percent %d", paneIDs[i], p)
		}
	}

	cpp := CellsPerPercent(total)
	var plan []Resize
	for i := 0; i < n-1; i++ {
		delta := widths[i] - percents[i]*cpp
		if delta == 0 {
			continue
		}
		shrink, grow := model.Left, model.Right
		if i == n-2 {
			shrink, grow = model.Right, model.Left
		}
		r := Resize{PaneID: paneIDs[i], Dir: shrink, Amount: delta}
		if delta < 0 {
			r.Dir, r.Amount = grow, -delta
		}
		plan = append(plan, r)
	}
	return plan, nil
}

// Engine applies layouts through a multiplexer.
type Engine struct {
	Mux     mux.Multiplexer
	Metrics *telem.Metrics
}

// New creates an Engine.
func New(m mux.Multiplexer, metrics *telem.Metrics) *Engine {
	return &Engine{Mux: m, Metrics: metrics}
}

// ResizeToLayout plans against the given widths and issues the resizes in
// one pass. Each pane is focused before it is resized because the
// multiplexer resizes relative to the focused pane's position. Widths are
// not re-measured between steps.
func (e *Engine) ResizeToLayout(ctx context.Context, paneIDs []string, percents, widths []int, total int) error {
	plan, err := Plan(paneIDs, percents, widths, total)
	if err != nil {
		return err
	}
	slog.Debug("layout plan", "panes", paneIDs, "percents", percents, "widths", widths, "total", total, "ops", len(plan))

	issued := 0
	defer func() { e.Metrics.RecordResizeOps(ctx, issued) }()
	for _, r := range plan {
		if err := e.Mux.FocusPane(ctx, r.PaneID); err != nil {
			return fmt.Errorf("focus pane %s: %w", r.PaneID, err)
		}
		if err := e.Mux.ResizePane(ctx, r.PaneID, r.Dir, r.Amount); err != nil {
			return fmt.Errorf("resize pane %s %s by %d: %w", r.PaneID, r.Dir, r.Amount, err)
		}
		issued++
	}
	return nil
}

// Apply reads the current widths of paneIDs from the multiplexer, uses
// their sum as the row width, and resizes toward percents.
func (e *Engine) Apply(ctx context.Context, paneIDs []string, percents []int) error {
	panes, err := e.Mux.ListPanes(ctx)
	if err != nil {
		return fmt.Errorf("list panes: %w", err)
	}
	widths := make([]int, len(paneIDs))
	total := 0
	for i, id := range paneIDs {
		p, ok := mux.FindPane(panes, id)
		if !ok {
			return fmt.Errorf("pane %s not found in %s pane list", id, e.Mux.Name())
		}
		widths[i] = p.Width
		total += p.Width
	}
	return e.ResizeToLayout(ctx, paneIDs, percents, widths, total)
}
