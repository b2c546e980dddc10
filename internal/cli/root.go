// Package cli implements the tern debug command line.
//
// The commands here are developer tooling for inspecting the IR passes;
// they read YAML body fixtures, run transforms, and print dumps. Nothing in
// the compilation pipeline itself depends on this package.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the tern CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tern",
		Short: "Tern IR pass inspector",
		Long:  "Inspect and debug Tern mid-level IR transforms on YAML body fixtures.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewMovesCommand(opts))

	return cmd
}
