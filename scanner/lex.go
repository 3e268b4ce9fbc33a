package scanner

import (
	"github.com/A31Nesta/EcLang/errors"
	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/token"
)

// Tok is one element of the token stream spec.md §4.E describes as
// the lexer's output.
type Tok struct {
	Pos token.Pos
	Kind token.Token
	Lit string
}

// Lex tokenizes src in full, returning every token (including the
// trailing EOF) or a failure listing every malformed lexeme
// encountered (spec.md §4.E: "processing continues to collect further
// errors, then the lexer fails").
func Lex(file *token.File, src []byte, language *lang.Language) ([]Tok, error) {
	var errs errors.List
	var s Scanner
	s.Init(file, src, language, &errs)

	var toks []Tok
	for {
		pos, tok, lit := s.Scan()
		toks = append(toks, Tok{Pos: pos, Kind: tok, Lit: lit})
		if tok == token.EOF {
			break
		}
	}
	if len(errs) > 0 {
		errs.Sort()
		return toks, errs
	}
	return toks, nil
}
