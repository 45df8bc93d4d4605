package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timvw/helix-panes/internal/layout"
	"github.com/timvw/helix-panes/internal/model"
	"github.com/timvw/helix-panes/internal/mux"
)

// Item is one entry of the interactive menu.
type Item struct {
	Action      string
	Arg         string
	Description string
}

// Title is the label shown in the menu.
func (i Item) Title() string {
	if i.Arg == "" {
		return i.Action
	}
	return i.Action + " " + i.Arg
}

// Catalog lists the actions that can be started from the menu, one layout
// entry per preset.
func Catalog(presets map[string]layout.Preset) []Item {
	items := []Item{
		{Action: "blame", Description: "blame the current line in the pane to the right"},
		{Action: "check", Description: "run the checker for this file type in the pane to the right"},
		{Action: "explorer", Description: "open the file explorer in the pane to the left"},
		{Action: "fzf", Description: "live grep the working directory in the pane to the right"},
		{Action: "open", Description: "open the current file and line in the browser"},
	}
	for _, name := range layout.Names(presets) {
		p := presets[name]
		items = append(items, Item{
			Action:      "layout",
			Arg:         name,
			Description: fmt.Sprintf("resize left/center/right to %d/%d/%d%%", p.Percents[0], p.Percents[1], p.Percents[2]),
		})
	}
	return items
}

// EditorPane resolves the pane that menu actions run against. An explicit
// id wins. Otherwise the menu is assumed to sit to the right of the editor,
// and a menu pane with no left neighbor (a popup) is taken to be the
// editor's own pane.
func (o *Orchestrator) EditorPane(ctx context.Context, menuPane, explicit string) (string, error) {
	if explicit != "" {
		id, err := o.Mux.ParsePaneID(explicit)
		if err != nil {
			return "", fmt.Errorf("editor pane: %w", err)
		}
		return id, nil
	}
	left, err := o.Mux.Neighbor(ctx, menuPane, model.Left)
	switch {
	case err == nil:
		return left, nil
	case errors.Is(err, mux.ErrNoNeighbor):
		slog.Debug("menu pane has no left neighbor, using it as the editor pane", "pane", menuPane)
		return menuPane, nil
	default:
		return "", fmt.Errorf("find editor pane left of %s: %w", menuPane, err)
	}
}

// Dispatch runs a catalog item against the editor pane ref.
func (o *Orchestrator) Dispatch(ctx context.Context, ref string, item Item) error {
	switch item.Action {
	case "blame":
		return o.Blame(ctx, ref)
	case "check":
		return o.Check(ctx, ref)
	case "explorer":
		return o.Explorer(ctx, ref)
	case "fzf":
		return o.Fzf(ctx, ref)
	case "open":
		return o.Open(ctx, ref)
	case "layout":
		return o.Layout(ctx, ref, item.Arg)
	default:
		return fmt.Errorf("unknown action %q", item.Action)
	}
}
