package parser

import (
	"github.com/A31Nesta/EcLang/errors"
	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/scanner"
	"github.com/A31Nesta/EcLang/token"
)

// parser holds parse state for a single file, per spec.md §3.6's
// per-file coordinator state (scope stack, template paths).
type parser struct {
	file *token.File
	lang *lang.Language
	ctx  FileContext

	scanner scanner.Scanner
	errs    errors.List

	pos token.Pos
	tok token.Token
	lit string

	panicking bool
	errCount  int

	roots      []*node.Node
	scopeStack []*node.Node

	templatePath         []*node.Node
	haveExternalTemplate bool
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.scanner.Scan()
}

// errorf records a diagnostic and keeps going, per spec.md §4.F/§7's
// "accumulate errors, continue, fail the whole pass" policy. It caps
// the number of *parser*-level errors (lexeme-level errors from the
// scanner are uncapped) to avoid runaway cascades on badly malformed
// input, mirroring cue/parser's panic-after-N-errors guard.
func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errCount++
	if p.errCount > 200 {
		return
	}
	p.errs.AddNewf(pos, format, args...)
}

// syncStmt skips tokens until a plausible statement boundary, so one
// malformed statement doesn't cascade into spurious follow-on errors.
func (p *parser) syncStmt() {
	for {
		switch p.tok {
		case token.SEMICOLON:
			p.next()
			return
		case token.SCOPE_EXIT, token.SCOPE_ENTER, token.CLASS, token.KEYWORD, token.EOF:
			return
		}
		p.next()
	}
}

func (p *parser) attach(n *node.Node) {
	if len(p.scopeStack) == 0 {
		p.roots = append(p.roots, n)
		return
	}
	p.scopeStack[len(p.scopeStack)-1].AddChild(n)
}

func (p *parser) parseTopLevel() {
	switch p.tok {
	case token.KEYWORD:
		p.parseDirective()
	case token.CLASS:
		p.parseClassStmt()
	case token.SCOPE_EXIT:
		p.parseScopeExit()
	case token.IDENTIFIER:
		p.parseAssignment()
	default:
		p.errorf(p.pos, "unexpected token %s", describeTok(p.tok, p.lit))
		p.next()
	}
}

func describeTok(tok token.Token, lit string) string {
	if tok.IsLiteral() && lit != "" {
		return tok.String() + " " + lit
	}
	return tok.String()
}

func (p *parser) parseClassStmt() {
	class := p.lit
	p.next() // consume CLASS

	if p.tok != token.IDENTIFIER {
		p.errorf(p.pos, "expected a node name after class %q, found %s", class, describeTok(p.tok, p.lit))
		p.syncStmt()
		return
	}
	name := p.lit
	p.next()

	n := node.New(class, name, p.ctx.FileID())

	switch p.tok {
	case token.SEMICOLON:
		p.next()
		p.attach(n)
	case token.SCOPE_ENTER:
		p.next()
		p.attach(n)
		p.scopeStack = append(p.scopeStack, n)
	default:
		p.errorf(p.pos, "expected ';' or '{' after %s %s, found %s", class, name, describeTok(p.tok, p.lit))
		p.syncStmt()
	}
}

func (p *parser) parseScopeExit() {
	if len(p.scopeStack) == 0 {
		p.errorf(p.pos, "'}' does not match any open scope")
		p.next()
		return
	}
	p.scopeStack = p.scopeStack[:len(p.scopeStack)-1]
	p.next()
}

// currentClass resolves the Class of the node currently at the top of
// the scope stack. It is always resolvable because the scanner only
// emits token.CLASS (and thus parseClassStmt only creates nodes) for
// names already registered in the Language.
func (p *parser) currentClass() (*lang.Class, *node.Node, bool) {
	if len(p.scopeStack) == 0 {
		return nil, nil, false
	}
	cur := p.scopeStack[len(p.scopeStack)-1]
	class, _, ok := p.lang.ClassByName(cur.Class)
	return class, cur, ok
}

func (p *parser) parseAssignment() {
	class, cur, ok := p.currentClass()
	if !ok {
		p.errorf(p.pos, "attribute assignment %q outside any node scope", p.lit)
		p.syncStmt()
		return
	}

	attrName := p.lit
	attrPos := p.pos
	p.next() // consume IDENTIFIER

	_, typ, ok := class.AttrByName(attrName)
	if !ok {
		p.errorf(attrPos, "unknown attribute %q on class %q", attrName, cur.Class)
		p.syncStmt()
		return
	}

	if p.tok != token.ASSIGN {
		p.errorf(p.pos, "expected '=' after attribute %q, found %s", attrName, describeTok(p.tok, p.lit))
		p.syncStmt()
		return
	}
	p.next()

	val, ok := p.parseValue(typ, attrName)
	if !ok {
		p.syncStmt()
		return
	}

	if p.tok != token.SEMICOLON {
		p.errorf(p.pos, "expected ';' after %s assignment, found %s", attrName, describeTok(p.tok, p.lit))
		p.syncStmt()
		return
	}
	p.next()

	cur.AddAttr(node.Attr{Name: attrName, Type: typ, Value: val})
}
