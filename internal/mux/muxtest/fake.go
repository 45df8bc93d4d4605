// Package muxtest provides an in-memory Multiplexer for tests.
package muxtest

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/timvw/helix-panes/internal/model"
	"github.com/timvw/helix-panes/internal/mux"
)

// Call records one operation issued against the fake.
type Call struct {
	Op      string
	PaneID  string
	Dir     model.Direction
	Amount  int
	Percent int
	Text    string
}

// Fake is an in-memory multiplexer. Neighbor relations are explicit rather
// than derived from geometry; SplitPane wires both directions.
type Fake struct {
	mu sync.Mutex

	Panes     []model.Pane
	Neighbors map[string]map[model.Direction]string
	Screens   map[string]string
	Active    string
	NextID    int

	// Errors makes the named operation ("split", "resize", ...) fail.
	Errors map[string]error

	Calls []Call
}

var _ mux.Multiplexer = (*Fake)(nil)

// New returns a fake holding the given panes, with the first one active.
func New(panes ...model.Pane) *Fake {
	f := &Fake{
		Panes:     panes,
		Neighbors: map[string]map[model.Direction]string{},
		Screens:   map[string]string{},
		Errors:    map[string]error{},
		NextID:    100,
	}
	if len(panes) > 0 {
		f.Active = panes[0].ID
	}
	return f
}

// Link records b as a's neighbor in direction dir, and a as b's neighbor
// in the opposite direction.
func (f *Fake) Link(a string, dir model.Direction, b string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.link(a, dir, b)
}

func (f *Fake) link(a string, dir model.Direction, b string) {
	if f.Neighbors[a] == nil {
		f.Neighbors[a] = map[model.Direction]string{}
	}
	if f.Neighbors[b] == nil {
		f.Neighbors[b] = map[model.Direction]string{}
	}
	f.Neighbors[a][dir] = b
	f.Neighbors[b][dir.Opposite()] = a
}

// CallsFor returns the recorded calls of one operation, in order.
func (f *Fake) CallsFor(op string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) record(c Call) error {
	f.Calls = append(f.Calls, c)
	if err := f.Errors[c.Op]; err != nil {
		return &mux.CommandError{Bin: "fake", Args: []string{c.Op, c.PaneID}, ExitCode: 1, Err: err}
	}
	return nil
}

func (f *Fake) Name() string    { return "fake" }
func (f *Fake) PaneEnv() string { return "FAKE_PANE" }

func (f *Fake) ParsePaneID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty pane id")
	}
	return s, nil
}

func (f *Fake) ListPanes(ctx context.Context) ([]model.Pane, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "list"}); err != nil {
		return nil, err
	}
	out := make([]model.Pane, len(f.Panes))
	copy(out, f.Panes)
	return out, nil
}

func (f *Fake) Neighbor(ctx context.Context, paneID string, dir model.Direction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "neighbor", PaneID: paneID, Dir: dir}); err != nil {
		return "", err
	}
	if id := f.Neighbors[paneID][dir]; id != "" {
		return id, nil
	}
	return "", mux.ErrNoNeighbor
}

func (f *Fake) SplitPane(ctx context.Context, paneID string, dir model.Direction, percent int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "split", PaneID: paneID, Dir: dir, Percent: percent}); err != nil {
		return "", err
	}
	id := strconv.Itoa(f.NextID)
	f.NextID++
	f.Panes = append(f.Panes, model.Pane{ID: id, Width: 10, Height: 10})
	f.link(paneID, dir, id)
	return id, nil
}

func (f *Fake) ResizePane(ctx context.Context, paneID string, dir model.Direction, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record(Call{Op: "resize", PaneID: paneID, Dir: dir, Amount: amount})
}

func (f *Fake) FocusPane(ctx context.Context, paneID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "focus", PaneID: paneID}); err != nil {
		return err
	}
	f.Active = paneID
	return nil
}

func (f *Fake) InjectText(ctx context.Context, paneID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record(Call{Op: "inject", PaneID: paneID, Text: text})
}

func (f *Fake) ReadScreenText(ctx context.Context, paneID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "read", PaneID: paneID}); err != nil {
		return "", err
	}
	if paneID == "" {
		paneID = f.Active
	}
	return f.Screens[paneID], nil
}
