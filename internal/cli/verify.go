package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lexkit-labs/lexkit/internal/config"
	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/verify"
)

var (
	verifyDiff bool
	verifyAll  bool
)

func init() {
	verifyCmd.Flags().BoolVar(&verifyDiff, "diff", false, "Show a unified diff for drifted templates")
	verifyCmd.Flags().BoolVar(&verifyAll, "all", false, "List paths that match as well as problems")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [root]",
	Short: "Check an existing tree against the project skeleton",
	Long: `Check root (default: the current directory) against the project skeleton
without modifying it. Reports missing paths, files standing where directories
belong and the reverse, and templates whose content no longer matches.
Exits non-zero when anything is out of place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", root, err)
		}
		s, err := config.Current()
		if err != nil {
			return err
		}
		l, err := layout.Default()
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}

		res, err := verify.Check(afero.NewOsFs(), l, abs)
		if err != nil {
			return err
		}

		out := newOutput(cmd.OutOrStdout(), s.Color)
		printFindings(out, res, verifyAll, verifyDiff)

		if n := len(res.Problems()); n > 0 {
			return fmt.Errorf("%d of %d paths do not match the skeleton", n, len(res.Findings))
		}
		return nil
	},
}

func printFindings(out *output, res *verify.Result, all, diff bool) {
	out.printf("Verifying %s\n", res.Root)
	for _, f := range res.Findings {
		if f.Status == verify.StatusOK && !all {
			continue
		}
		out.line(statusTag(f.Status), "%s", f.Path)
		for _, d := range f.Details {
			fmt.Fprintf(out.w, "         %s\n", d)
		}
		if diff && f.Diff != "" {
			for _, l := range strings.Split(strings.TrimRight(f.Diff, "\n"), "\n") {
				fmt.Fprintf(out.w, "         %s\n", l)
			}
		}
	}
	out.printf("\n%d paths: %d ok, %d missing, %d collisions, %d drifted, %d errors\n",
		len(res.Findings),
		res.Count(verify.StatusOK),
		res.Count(verify.StatusMissing),
		res.Count(verify.StatusCollision),
		res.Count(verify.StatusDrift),
		res.Count(verify.StatusError))
}
