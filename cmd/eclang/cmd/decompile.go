package cmd

import (
	"github.com/spf13/cobra"
)

func newDecompileCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "decompile <file>",
		Short: "decompile an EcLang binary file back to source text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadAndCompile(cmd, args[0])
			if err != nil {
				return err
			}
			src, err := e.SaveSource()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(src))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to stdout)")
	return cmd
}
