package eclbin

import (
	"bytes"
	"fmt"

	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/node"
)

// EncodeInput is everything the encoder needs from a fully populated
// coordinator (spec.md §4.G's "Input").
type EncodeInput struct {
	Language *lang.Language
	Roots    []*node.Node

	// IncludedFilenames is indexed by source-file id; entry k is a
	// tagged path, 'i'+path for a dynamic include or 't'+path for a
	// dynamic template import (spec.md §3.6). Index 0 is unused: file
	// id 0 always means "authored here" and is never looked up.
	IncludedFilenames []string

	// TemplatePath is this file's own template node path — the scope
	// stack captured where its bare "#template" fired — or nil.
	TemplatePath []*node.Node
}

type encoder struct {
	buf          bytes.Buffer
	lang         *lang.Language
	filenames    []string
	templateNode *node.Node
}

// Encode serializes a coordinator's tree to the compiled form: the
// Language identifier bytes, a single 0x00, then the instruction
// stream produced by the emission algorithm of spec.md §4.G.
func Encode(in EncodeInput) ([]byte, error) {
	e := &encoder{lang: in.Language, filenames: in.IncludedFilenames}
	if len(in.TemplatePath) > 0 {
		e.templateNode = in.TemplatePath[len(in.TemplatePath)-1]
	}

	e.buf.Write(in.Language.Identifier)
	e.buf.WriteByte(0)

	if err := e.emitSiblings(in.Roots); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

func (e *encoder) lookupImport(fileID int) (tag byte, path string, ok bool) {
	if fileID <= 0 || fileID >= len(e.filenames) {
		return 0, "", false
	}
	tagged := e.filenames[fileID]
	if tagged == "" {
		return 0, "", false
	}
	return tagged[0], tagged[1:], true
}

// emitSiblings walks one sibling list (a root list, or one node's
// children), per the recursive emission algorithm of spec.md §4.G.
func (e *encoder) emitSiblings(nodes []*node.Node) error {
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if n.FileID != 0 {
			tag, path, ok := e.lookupImport(n.FileID)
			if !ok {
				return fmt.Errorf("eclbin: node %q has unrecognized source-file id %d", n.Name, n.FileID)
			}
			switch tag {
			case 'i':
				e.buf.WriteByte(opInclude)
				if err := writeString(&e.buf, stringKindNormal, path); err != nil {
					return err
				}
				// Consume the contiguous run of subsequent siblings
				// sharing this file id; they are re-fetched from the
				// included file at decode time, not re-emitted.
				j := i
				for j < len(nodes) && nodes[j].FileID == n.FileID {
					j++
				}
				i = j
				continue
			case 't':
				e.buf.WriteByte(opTemplate)
				if err := writeString(&e.buf, stringKindNormal, path); err != nil {
					return err
				}
				// The template target node itself belongs to the
				// imported file and is not re-created; descend
				// straight into its children, then stop — everything
				// after a template import belongs inside that node.
				return e.emitSiblings(n.Children())
			default:
				return fmt.Errorf("eclbin: node %q has an unknown import tag %q", n.Name, tag)
			}
		}
		if err := e.emitNode(n); err != nil {
			return err
		}
		i++
	}
	return nil
}

func (e *encoder) emitNode(n *node.Node) error {
	e.buf.WriteByte(opCreate)
	class, classID, ok := e.lang.ClassByName(n.Class)
	if ok {
		e.buf.WriteByte(byte(classID))
	} else {
		e.buf.WriteByte(customRef)
		if err := writeString(&e.buf, stringKindNormal, n.Class); err != nil {
			return err
		}
	}
	if err := writeString(&e.buf, stringKindNormal, n.Name); err != nil {
		return err
	}

	needsScope := len(n.Children()) > 0 || len(n.Attrs()) > 0 || n == e.templateNode
	if needsScope {
		e.buf.WriteByte(opScopeEnter)
	}
	if n == e.templateNode {
		e.buf.WriteByte(opMarkTemplate)
	}

	for _, a := range n.Attrs() {
		if err := e.emitAttr(class, ok, a); err != nil {
			return err
		}
	}

	if err := e.emitSiblings(n.Children()); err != nil {
		return err
	}

	if needsScope {
		e.buf.WriteByte(opScopeExit)
	}
	return nil
}

func (e *encoder) emitAttr(class *lang.Class, classKnown bool, a node.Attr) error {
	var attrID int
	var attrOK bool
	if classKnown {
		attrID, _, attrOK = class.AttrByName(a.Name)
	}
	if !attrOK {
		e.buf.WriteByte(opAttribute)
		e.buf.WriteByte(customRef)
		if err := writeString(&e.buf, stringKindNormal, a.Name); err != nil {
			return err
		}
		return writeString(&e.buf, stringKindNormal, a.Value.String())
	}
	e.buf.WriteByte(opAttribute)
	e.buf.WriteByte(byte(attrID))
	return encodeValue(&e.buf, a.Value)
}
