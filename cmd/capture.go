package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture [pane-id]",
	Short: "Print the visible text of a pane",
	Long: `Print the rendered text of a pane, with escape sequences removed, to
stdout. Without a pane id the active pane is captured.

The pane id format depends on the multiplexer:
  wezterm: 3
  tmux:    %3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
		var paneID string
		if len(args) == 1 {
			id, err := a.mux.ParsePaneID(args[0])
			if err != nil {
				return err
			}
			paneID = id
		}

		content, err := a.mux.ReadScreenText(cmd.Context(), paneID)
		if err != nil {
			return fmt.Errorf("failed to capture pane %q: %w", paneID, err)
		}

		fmt.Fprint(os.Stdout, content)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
