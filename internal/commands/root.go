package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/buildinfo"
)

// rootOptions carries the persistent flags shared by all subcommands.
type rootOptions struct {
	dir     string
	role    string
	adjust  bool
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tallybook",
		Short:   "Plain-file double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	defaultDir := os.Getenv("TALLYBOOK_LEDGER_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", defaultDir, "ledger directory")
	rootCmd.PersistentFlags().StringVar(&opts.role, "role", "", "acting role (user, accountant, manager, admin)")
	rootCmd.PersistentFlags().BoolVar(&opts.adjust, "adjust", false, "adjustment mode: allow reversal entries")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newPostCommand(opts))
	rootCmd.AddCommand(newVoidCommand(opts))
	rootCmd.AddCommand(newDeleteCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newTrialBalanceCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))

	return rootCmd
}
