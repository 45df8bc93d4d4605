package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the editor's current file and line as JSON",
	Args:  cobra.NoArgs,
	RunE: runAction(func(ctx context.Context, a *app, ref string, _ []string) error {
		ec, err := a.orch.Status(ctx, ref)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(ec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
