package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var explorerCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Open the file explorer in the pane to the left",
	Args:  cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		return a.orch.Explorer(ctx, ref)
	}),
}

func init() {
	rootCmd.AddCommand(explorerCmd)
}
