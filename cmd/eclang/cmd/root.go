// Package cmd implements the eclang CLI's subcommands.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it against args (normally
// os.Args[1:]).
func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eclang",
		Short:         "compile, decompile, and inspect EcLang files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringArray("lang", nil, "path to a Language YAML binding (repeatable)")
	cmd.PersistentFlags().String("lang-manifest", "", "path to a YAML manifest listing Language bindings to register before --lang")
	cmd.PersistentFlags().Bool("verbose", false, "log informational diagnostics to stderr")

	cmd.AddCommand(newCompileCmd())
	cmd.AddCommand(newDecompileCmd())
	cmd.AddCommand(newInspectCmd())
	return cmd
}

func verbosity(cmd *cobra.Command) slog.Level {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelError
}
