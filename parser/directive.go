package parser

import (
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/token"
)

func (p *parser) expectString() (string, bool) {
	if p.tok != token.STRING {
		p.errorf(p.pos, "expected a string literal, found %s", describeTok(p.tok, p.lit))
		return "", false
	}
	lit := p.lit
	p.next()
	return lit, true
}

func (p *parser) parseDirective() {
	kw := p.lit
	pos := p.pos
	p.next() // consume the keyword

	switch kw {
	case "#language":
		p.errorf(pos, "#language must be the first line of the file")
		p.syncStmt()

	case "#include":
		p.parseInclude(pos, false)

	case "#include-dyn":
		p.parseInclude(pos, true)

	case "#template":
		p.parseTemplate(pos, false)

	case "#template-dyn":
		p.parseTemplate(pos, true)

	case "#register":
		alias, ok := p.expectString()
		if !ok {
			p.syncStmt()
			return
		}
		path, ok := p.expectString()
		if !ok {
			p.syncStmt()
			return
		}
		p.ctx.Register(alias, path)

	default:
		p.errorf(pos, "unsupported keyword %q", kw)
		p.syncStmt()
	}
}

func (p *parser) parseInclude(pos token.Pos, dyn bool) {
	path, ok := p.expectString()
	if !ok {
		p.syncStmt()
		return
	}
	roots, _, err := p.ctx.Include(pos, path, dyn)
	if err != nil {
		p.errorf(pos, "include %q: %v", path, err)
		return
	}
	for _, r := range roots {
		p.attach(r)
	}
}

// parseTemplate handles both "#template" (bare, no argument — marks
// this file's own template node) and "#template"/"#template-dyn" with
// a path argument (imports another file's template target), per
// spec.md §4.F.
func (p *parser) parseTemplate(pos token.Pos, dyn bool) {
	if !dyn && p.tok != token.STRING {
		// Bare "#template": mark the current scope stack as this
		// file's template node path.
		p.templatePath = append([]*node.Node(nil), p.scopeStack...)
		return
	}

	path, ok := p.expectString()
	if !ok {
		p.syncStmt()
		return
	}
	if p.haveExternalTemplate {
		p.errorf(pos, "a file may import at most one template, already imported one")
		return
	}

	roots, templatePath, _, err := p.ctx.Template(pos, path, dyn)
	if err != nil {
		p.errorf(pos, "template %q: %v", path, err)
		return
	}
	p.haveExternalTemplate = true
	for _, r := range roots {
		p.attach(r)
	}
	// Nest further parsed content inside the imported template's
	// target node by extending our own scope stack with its path.
	p.scopeStack = append(p.scopeStack, templatePath...)
}
