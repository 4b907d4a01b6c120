package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/requirements"
)

var depsGroup string

func init() {
	depsCmd.Flags().StringVar(&depsGroup, "group", "", "Only list pins in this group")
	rootCmd.AddCommand(depsCmd)
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the pinned Python dependencies",
	Long: `List the exact pins of the requirements.txt template grouped by their
comment headers. Commented-out pins are shown as optional.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := layout.TemplateBody("requirements.txt")
		if err != nil {
			return err
		}
		m, err := requirements.Parse(body)
		if err != nil {
			return fmt.Errorf("parsing requirements template: %w", err)
		}

		groups := m.Groups
		if depsGroup != "" {
			g, ok := m.Group(depsGroup)
			if !ok {
				return fmt.Errorf("no dependency group %q", depsGroup)
			}
			groups = []requirements.Group{g}
		}

		w := cmd.OutOrStdout()
		for i, g := range groups {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", g.Name)
			for _, p := range g.Pins {
				suffix := ""
				if p.Optional {
					suffix = " (optional)"
				}
				fmt.Fprintf(w, "  %-24s %s%s\n", p.Name, p.Raw, suffix)
			}
		}
		fmt.Fprintf(w, "\n%d pinned, %d required\n", len(m.Pins()), len(m.Required()))
		return nil
	},
}
