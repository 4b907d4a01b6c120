package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lexkit-labs/lexkit/internal/branding"
	"github.com/lexkit-labs/lexkit/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

func init() {
	rootCmd.PersistentFlags().Bool(config.KeyColor, true, "Colour status tags (--color=false to disable)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` provisions the project skeleton of the legal assistant application
(directories, package and retention markers, and literal templates) and verifies
existing trees against it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		return config.BindFlags(cmd.Flags())
	},
}

// Execute runs the root command with build info injected via ldflags.
// Interrupts cancel the running command.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
