// Package node implements the in-memory node tree of spec.md §3.5: a
// Node is (class name, node name, source-file id, ordered attributes,
// ordered children). Nodes are created and mutated only by the parser
// or decoder that owns them; once handed to a caller as a finished
// tree they are treated as read-only (spec.md §3.5's lifecycle note).
//
// Ownership transfer during inclusion (spec.md §3.6/§9) is expressed
// by moving a []*Node slice from a child coordinator into its parent,
// rather than by a flag on Node itself — the design note in spec.md
// §9 asks for owned-by-value trees in place of the original's raw
// pointers and "transferred" flag, and a moved slice already gives
// that for free in Go.
package node

import "github.com/A31Nesta/EcLang/value"

// Attr is a named, typed, valued attribute attached to a Node
// (spec.md §3.2).
type Attr struct {
	Name  string
	Type  value.Type
	Value value.Value
}

// Node is one instance of a Class in the tree (spec.md §3.5).
type Node struct {
	Class  string
	Name   string
	FileID int

	attrs     []Attr
	attrIndex map[string]int
	children  []*Node
}

// New creates a childless, attributeless node for class/name at the
// given source-file id (0 meaning "authored in the current file",
// per spec.md §3.5).
func New(class, name string, fileID int) *Node {
	return &Node{Class: class, Name: name, FileID: fileID}
}

// AddAttr appends an attribute, preserving insertion order (spec.md
// §3.2). It is the parser's and decoder's responsibility to ensure a
// name is not attached twice; AddAttr itself does not reject
// duplicates so that custom/unknown-class attribute passthrough
// (spec.md §4.G step 5) can't be blocked by this invariant.
func (n *Node) AddAttr(a Attr) {
	if n.attrIndex == nil {
		n.attrIndex = make(map[string]int)
	}
	if _, dup := n.attrIndex[a.Name]; !dup {
		n.attrIndex[a.Name] = len(n.attrs)
	}
	n.attrs = append(n.attrs, a)
}

// AddChild appends a child node at the tail of this node's child
// list, preserving sibling order (spec.md §3.5, §5).
func (n *Node) AddChild(c *Node) {
	n.children = append(n.children, c)
}

// Attrs returns the node's attributes in insertion order. Callers
// must not mutate the result.
func (n *Node) Attrs() []Attr { return n.attrs }

// Children returns the node's children in source order. Callers must
// not mutate the result.
func (n *Node) Children() []*Node { return n.children }

// AttrByName returns the first attribute with the given name, per the
// node/sibling uniqueness convention of spec.md §3.7.
func (n *Node) AttrByName(name string) (Attr, bool) {
	if i, ok := n.attrIndex[name]; ok {
		return n.attrs[i], true
	}
	return Attr{}, false
}

// ChildByName returns the first child with the given name, or false
// if none matches (spec.md §3.7: "lookup returns the first match").
func (n *Node) ChildByName(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ChildrenByClass returns this node's direct children whose Class
// equals class, in insertion order (the by-class filter of spec.md
// §2 component C).
func (n *Node) ChildrenByClass(class string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Class == class {
			out = append(out, c)
		}
	}
	return out
}
