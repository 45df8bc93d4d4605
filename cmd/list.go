package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List panes",
	Long: `List the multiplexer's panes with their size and foreground program.

Each pane id can be passed to capture.`,
	Args: cobra.NoArgs,
	RunE: runWithApp(func(cmd *cobra.Command, a *app, _ []string) error {
		panes, err := a.mux.ListPanes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}

		if flagListJSON {
			data, err := json.MarshalIndent(panes, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal panes: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSIZE\tPROGRAM")
		for _, p := range panes {
			fmt.Fprintf(w, "%s\t%dx%d\t%s\n", p.ID, p.Width, p.Height, p.Command)
		}
		return w.Flush()
	}),
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "print panes as JSON")
	rootCmd.AddCommand(listCmd)
}
