package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/timvw/helix-panes/cmd.Version=...".
var Version = "dev"

var (
	// Global flags.
	flagMux string
)

var rootCmd = &cobra.Command{
	Use:   "helix-panes",
	Short: "Drive terminal multiplexer panes from the helix editor",
	Long: `helix-panes is called from editor key bindings to run tools next to the
editor: blame the current line, run a checker, open a file explorer or a live
grep, and arrange the panes around the editor to a preset layout.

The editor's current file and line are read from its status line on screen.
The pane helix-panes runs in is taken from $WEZTERM_PANE or $TMUX_PANE.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", "", "terminal multiplexer: wezterm, tmux (default: config, $HELIX_PANES_MUX, or auto-detect)")
}
