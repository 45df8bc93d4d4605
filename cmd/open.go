package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the current file and line in the browser",
	Long: `Run the browse command (default: gh browse {file}:{line}) for the
editor's current file and line.`,
	Args: cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		return a.orch.Open(ctx, ref)
	}),
}

func init() {
	rootCmd.AddCommand(openCmd)
}
