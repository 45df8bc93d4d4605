package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/timvw/helix-panes/internal/action"
	"github.com/timvw/helix-panes/internal/menu"
)

var (
	flagTheme      string
	flagEditorPane string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick an action interactively",
	Long: `Show a filterable list of actions and layout presets, then run the
chosen one against the editor. The editor is the pane given by --pane, or
else the pane to the left of the menu. A menu without a left neighbor, such
as a popup, runs against its own pane. Esc or q cancels.`,
	Args: cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		editor, err := a.orch.EditorPane(ctx, ref, flagEditorPane)
		if err != nil {
			return err
		}
		mn := &menu.Menu{
			Items: action.Catalog(a.cfg.Presets),
			Theme: menu.ThemeByName(flagTheme),
		}
		item, ok, err := mn.Run(ctx)
		if err != nil {
			return err
		}
		if !ok {
			slog.Debug("menu cancelled")
			return nil
		}
		slog.Debug("menu dispatch", "action", item.Title(), "menu_pane", ref, "editor_pane", editor)
		return a.orch.Dispatch(ctx, editor, item)
	}),
}

func init() {
	menuCmd.Flags().StringVar(&flagEditorPane, "pane", "", "editor pane id (default: the pane left of the menu)")
	menuCmd.Flags().StringVar(&flagTheme, "theme", "dark", "color theme: dark, light")
	rootCmd.AddCommand(menuCmd)
}
