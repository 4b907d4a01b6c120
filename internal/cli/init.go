package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lexkit-labs/lexkit/internal/config"
	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/scaffold"
)

var (
	initDryRun bool
	initQuiet  bool
)

func init() {
	initCmd.Flags().Int(config.KeyWorkers, scaffold.DefaultWorkers, "Concurrent filesystem operations")
	initCmd.Flags().Int(config.KeyRetries, scaffold.DefaultRetries, "Retries for transient filesystem errors")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Report what would change without writing anything")
	initCmd.Flags().BoolVarP(&initQuiet, "quiet", "q", false, "Only print failures and the summary")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [root]",
	Short: "Provision the project skeleton",
	Long: `Provision the legal assistant project skeleton under root (default: the
current directory).

Missing directories are created with their parents, empty __init__.py and
.gitkeep markers are created only when absent, and .gitignore,
requirements.txt and .env.example are always rewritten. Every path is
attempted; failures are listed together and make the command exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runInit(cmd, root)
	},
}

func runInit(cmd *cobra.Command, root string) error {
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

	var fsys afero.Fs = afero.NewOsFs()
	if initDryRun {
		fsys = scaffold.DryRunFs(fsys)
	}

	opts := scaffold.DefaultOptions()
	opts.Workers = s.Workers
	opts.Retries = s.Retries
	opts.DryRun = initDryRun

	out := newOutput(cmd.OutOrStdout(), s.Color)
	report, err := scaffold.New(fsys, l, opts).Scaffold(cmd.Context(), abs)

	var partial *scaffold.PartialFailureError
	if err != nil && !errors.As(err, &partial) {
		if scaffold.IsPermission(err) {
			return fmt.Errorf("provisioning %s: %w (check write access to the parent directory)", abs, err)
		}
		return fmt.Errorf("provisioning %s: %w", abs, err)
	}

	printReport(out, report, initQuiet)
	if partial != nil {
		return fmt.Errorf("provisioning %s: %d of %d paths failed", abs, len(partial.Failures), partial.Attempted)
	}
	return nil
}

func printReport(out *output, r *scaffold.Report, quiet bool) {
	heading := "Provisioning %s\n"
	if r.DryRun {
		heading = "Provisioning %s (dry run, nothing written)\n"
	}
	out.printf(heading, r.Root)
	if r.RootCreated {
		out.line(tagOK, ". (root created)")
	}

	for _, e := range r.Entries {
		switch {
		case e.Action == scaffold.ActionFailed:
			out.line(tagFail, "%s: %s: %v", e.Path, e.Err.Code, e.Err.Err)
		case quiet:
		case e.Bytes > 0:
			out.line(actionTag(e.Action), "%s (%s)", e.Path, humanize.Bytes(uint64(e.Bytes)))
		default:
			out.line(actionTag(e.Action), "%s", e.Path)
		}
	}

	sum := r.Summary()
	out.printf("\n%d paths: %d created, %d present, %d overwritten, %d failed (%s written)\n",
		sum.Total(), sum.Created, sum.Present, sum.Overwritten, sum.Failed, humanize.Bytes(uint64(sum.Bytes)))
}
