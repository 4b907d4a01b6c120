package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lexkit-labs/lexkit/internal/layout"
)

var layoutYAML bool

func init() {
	layoutCmd.Flags().BoolVar(&layoutYAML, "yaml", false, "Print the embedded layout manifest")
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the project skeleton",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if layoutYAML {
			_, err := w.Write(layout.Raw())
			return err
		}

		l, err := layout.Default()
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}

		fmt.Fprintf(w, "%s %s\n", l.Name, l.Version)
		fmt.Fprintf(w, "\nDirectories (%d):\n", len(l.Directories))
		for _, d := range l.Directories {
			fmt.Fprintf(w, "  %s/\n", d.Path)
		}
		fmt.Fprintf(w, "\nMarkers (%d):\n", len(l.Markers))
		for _, m := range l.Markers {
			fmt.Fprintf(w, "  %-32s %s\n", m.Path, m.Kind)
		}
		fmt.Fprintf(w, "\nTemplates (%d):\n", len(l.Templates))
		for _, t := range l.Templates {
			fmt.Fprintf(w, "  %-32s %s\n", t.Path, humanize.Bytes(uint64(len(t.Content))))
		}
		return nil
	},
}
