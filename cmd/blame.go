package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var blameCmd = &cobra.Command{
	Use:   "blame",
	Short: "Blame the current line in the pane to the right",
	Long: `Read the editor's file and line from its status line and run the blame
command (default: tig blame) in the pane to the right of the editor, creating
that pane if needed.`,
	Args: cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		return a.orch.Blame(ctx, ref)
	}),
}

func init() {
	rootCmd.AddCommand(blameCmd)
}
