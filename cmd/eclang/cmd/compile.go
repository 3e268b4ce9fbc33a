package cmd

import (
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "compile EcLang source to its binary form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadAndCompile(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := e.SaveCompiled()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to stdout)")
	return cmd
}
