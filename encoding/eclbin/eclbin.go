// Package eclbin implements the compiled-form binary encoder and
// decoder of spec.md §4.G–§4.H: an instruction-coded stream of
// CREATE/ATTRIBUTE/SCOPE_ENTER/SCOPE_EXIT/INCLUDE/TEMPLATE/
// MARK_TEMPLATE opcodes against a [lang.Language] binding, carrying a
// [node.Node] tree to and from bytes.
//
// The file header (Language identifier bytes + a single 0x00) is the
// caller's responsibility — [Encode] emits it, [Decode] expects the
// caller to have already stripped it off, mirroring how the
// coordinator performs the identifier match before ever handing bytes
// to this package (spec.md §4.I).
package eclbin

import "github.com/A31Nesta/EcLang/node"

// Instruction opcodes, spec.md §4.G's instruction set.
const (
	opCreate       byte = 0x01
	opAttribute    byte = 0x02
	opScopeEnter   byte = 0x03
	opScopeExit    byte = 0x04
	opInclude      byte = 0x05
	opTemplate     byte = 0x06
	opMarkTemplate byte = 0x07
)

// customRef is the 0xFF class-id/attr-id sentinel meaning "by name",
// spec.md §3.3/§3.4.
const customRef byte = 0xFF

// stringKindNormal and stringKindMD are the leading kind byte of a
// STRING operand (spec.md §4.G).
const (
	stringKindNormal byte = 0x00
	stringKindMD     byte = 0x01
)

// FileContext is the coordinator-state dependency the decoder needs to
// resolve INCLUDE/TEMPLATE operands, mirroring parser.FileContext but
// narrower: every binary INCLUDE/TEMPLATE operand denotes a *dynamic*
// import (static includes are already inlined as plain CREATE nodes by
// the encoder, so the decoder never needs a dyn flag).
type FileContext interface {
	FileID() int
	Include(pathOrAlias string) (roots []*node.Node, fileID int, err error)
	Template(pathOrAlias string) (roots []*node.Node, templatePath []*node.Node, fileID int, err error)
}

// Result is what a decoded (or about-to-be-encoded) file contributes:
// its root nodes plus its own template node path, if it marked one.
type Result struct {
	Roots        []*node.Node
	TemplatePath []*node.Node
}
