package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the checker for the current file in the pane to the right",
	Long: `Run the check command configured for the current file's extension
(checks.<ext> in the config file) in the pane to the right of the editor.
Files without a configured checker are left alone.

Built-in checks:
  rs  cd {root} && cargo check
  go  cd {cwd} && go vet ./{dir}
  py  ruff check {file}`,
	Args: cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		return a.orch.Check(ctx, ref)
	}),
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
