package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the base command and its subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hookline",
		Short: "Run action and filter hook scripts.",
		Long: `hookline loads a TOML script that attaches built-in callbacks to hooks ` +
			`and dispatches actions and filters, printing each result and the ` +
			`dispatch counters.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newBuiltinsCmd())
	return root
}
