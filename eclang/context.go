package eclang

import (
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/token"
)

// parserCtx adapts *EcLang to parser.FileContext.
type parserCtx struct{ e *EcLang }

func (p parserCtx) FileID() int { return p.e.FileID() }

func (p parserCtx) Include(pos token.Pos, pathOrAlias string, dyn bool) ([]*node.Node, int, error) {
	return p.e.include(pos, pathOrAlias, dyn)
}

func (p parserCtx) Template(pos token.Pos, pathOrAlias string, dyn bool) ([]*node.Node, []*node.Node, int, error) {
	return p.e.template(pos, pathOrAlias, dyn)
}

func (p parserCtx) Register(alias, path string) { p.e.registerAlias(alias, path) }

// decoderCtx adapts *EcLang to eclbin.FileContext. Every binary
// INCLUDE/TEMPLATE operand is a dynamic import by construction (static
// includes are already inlined by the encoder), hence the fixed
// dyn=true.
type decoderCtx struct{ e *EcLang }

func (d decoderCtx) FileID() int { return d.e.FileID() }

func (d decoderCtx) Include(pathOrAlias string) ([]*node.Node, int, error) {
	return d.e.include(token.NoPos, pathOrAlias, true)
}

func (d decoderCtx) Template(pathOrAlias string) ([]*node.Node, []*node.Node, int, error) {
	return d.e.template(token.NoPos, pathOrAlias, true)
}
