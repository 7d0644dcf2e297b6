package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set through -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "coop_backend",
		Short:   "Back office of a school savings cooperative",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newReconcileCommand(),
		newTokenCommand(),
		newAPIKeyCommand(),
	)

	return rootCmd
}
