package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [preset]",
	Short: "Resize the panes around the editor to a preset",
	Long: `Arrange the pane left of the editor, the editor, and the pane right of
it to a preset's width percentages, creating the side panes if needed.

Built-in presets:
  default         20/55/25
  large-terminal  15/40/45  (alias: large)
  small-terminal  15/70/15  (alias: small)

More presets can be defined under layouts: in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAction(func(ctx context.Context, a *app, ref string, args []string) error {
		name := "default"
		if len(args) == 1 {
			name = args[0]
		}
		return a.orch.Layout(ctx, ref, name)
	}),
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
