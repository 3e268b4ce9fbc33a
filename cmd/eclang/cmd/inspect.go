package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/A31Nesta/EcLang/node"
)

func newInspectCmd() *cobra.Command {
	var class string
	var path string
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "print the object tree of an EcLang file (source or compiled)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadAndCompile(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "language: %s (source=%v)\n", e.Language().Name, e.WasSource())

			if path != "" {
				n, ok := e.Object(path)
				if !ok {
					return fmt.Errorf("no object at path %q", path)
				}
				printTree(out, n, 0)
				return nil
			}

			roots := e.AllObjects()
			if class != "" {
				roots = e.ObjectsByClass(class)
			}
			for _, n := range roots {
				printTree(out, n, 0)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "only print root-level objects of this class")
	cmd.Flags().StringVar(&path, "path", "", "print only the object at this slash-separated path")
	return cmd
}

func printTree(out io.Writer, n *node.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Fprintf(out, "%s%s %s", indent, n.Class, n.Name)
	if n.FileID != 0 {
		fmt.Fprintf(out, " (file %d)", n.FileID)
	}
	fmt.Fprintln(out)
	for _, a := range n.Attrs() {
		fmt.Fprintf(out, "%s  %s = %s\n", indent, a.Name, a.Value.String())
	}
	for _, c := range n.Children() {
		printTree(out, c, depth+1)
	}
}
