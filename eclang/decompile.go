package eclang

import (
	"fmt"
	"strings"

	"github.com/A31Nesta/EcLang/node"
)

// decompile re-emits e's tree as EcLang source text, mirroring the
// binary encoder's traversal (spec.md §4.G) but producing "{ }"
// scopes, ";" terminators, "=" assignments, and #include-dyn/
// #template-dyn directives in place of the corresponding opcodes.
func decompile(e *EcLang) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "#language %s\n", e.language.Name)

	d := &decompiler{b: &b, filenames: e.includedFilenames}
	if len(e.templatePath) > 0 {
		d.templateNode = e.templatePath[len(e.templatePath)-1]
	}
	if err := d.emitSiblings(e.roots, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

type decompiler struct {
	b            *strings.Builder
	filenames    []string
	templateNode *node.Node
}

func (d *decompiler) lookupImport(fileID int) (tag byte, path string, ok bool) {
	if fileID <= 0 || fileID >= len(d.filenames) {
		return 0, "", false
	}
	tagged := d.filenames[fileID]
	if tagged == "" {
		return 0, "", false
	}
	return tagged[0], tagged[1:], true
}

func (d *decompiler) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		d.b.WriteString("  ")
	}
}

func (d *decompiler) emitSiblings(nodes []*node.Node, depth int) error {
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if n.FileID != 0 {
			tag, path, ok := d.lookupImport(n.FileID)
			if !ok {
				return fmt.Errorf("eclang: node %q has unrecognized source-file id %d", n.Name, n.FileID)
			}
			switch tag {
			case 'i':
				d.writeIndent(depth)
				fmt.Fprintf(d.b, "#include-dyn %q\n", path)
				j := i
				for j < len(nodes) && nodes[j].FileID == n.FileID {
					j++
				}
				i = j
				continue
			case 't':
				d.writeIndent(depth)
				fmt.Fprintf(d.b, "#template-dyn %q\n", path)
				return d.emitSiblings(n.Children(), depth)
			default:
				return fmt.Errorf("eclang: node %q has an unknown import tag %q", n.Name, tag)
			}
		}
		if err := d.emitNode(n, depth); err != nil {
			return err
		}
		i++
	}
	return nil
}

func (d *decompiler) emitNode(n *node.Node, depth int) error {
	d.writeIndent(depth)
	fmt.Fprintf(d.b, "%s %s", n.Class, n.Name)

	needsScope := len(n.Children()) > 0 || len(n.Attrs()) > 0 || n == d.templateNode
	if !needsScope {
		d.b.WriteString(";\n")
		return nil
	}

	d.b.WriteString(" {\n")
	if n == d.templateNode {
		d.writeIndent(depth + 1)
		d.b.WriteString("#template\n")
	}
	for _, a := range n.Attrs() {
		d.writeIndent(depth + 1)
		fmt.Fprintf(d.b, "%s = %s;\n", a.Name, a.Value.String())
	}
	if err := d.emitSiblings(n.Children(), depth+1); err != nil {
		return err
	}
	d.writeIndent(depth)
	d.b.WriteString("}\n")
	return nil
}
