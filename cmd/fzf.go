package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var fzfCmd = &cobra.Command{
	Use:   "fzf",
	Short: "Live grep the working directory in the pane to the right",
	Long: `Start the live grep pipeline (rg | fzf by default) in the pane to the
right of the editor. Picking a match runs "helix-panes fzf-open" from that
pane, which opens the match in the editor.`,
	Args: cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		return a.orch.Fzf(ctx, ref)
	}),
}

var fzfOpenCmd = &cobra.Command{
	Use:   "fzf-open <path:line[:column]>",
	Short: "Open a search match in the editor pane to the left",
	Long: `Open a match emitted by the search tool (path:line:column:text) in the
editor running in the pane to the left of the calling pane, then focus the
editor. The editor pane must exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runAction(func(ctx context.Context, a *app, ref string, args []string) error {
		return a.orch.FzfOpen(ctx, ref, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(fzfCmd)
	rootCmd.AddCommand(fzfOpenCmd)
}
