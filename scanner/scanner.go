// Package scanner implements the EcLang lexer of spec.md §4.E. It
// takes source text (with the leading "#language <name>" line already
// consumed by the coordinator) and produces a token stream, resolving
// the CLASS/IDENTIFIER ambiguity against the selected [lang.Language]
// as each identifier-shaped lexeme is scanned.
//
// The scanning loop mirrors cue-lang-cue's cue/scanner package: a
// single rune-at-a-time reader (next), per-category scan functions,
// and an accumulating error list rather than a single first failure.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/A31Nesta/EcLang/errors"
	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/token"
)

// Scanner holds the lexer's state while processing source text. It
// must be initialized with Init before use, and must not be reused
// across files (a fresh Scanner is cheap to construct).
type Scanner struct {
	file *token.File
	src  []byte
	lang *lang.Language
	errs *errors.List

	ch       rune
	offset   int
	rdOffset int

	// ErrorCount counts the lexeme-level errors reported so far.
	ErrorCount int
}

const eof = -1

// Init prepares s to tokenize src. language supplies the CLASS
// keyword set used to disambiguate CLASS from IDENTIFIER lexemes
// (spec.md §4.E design choice). Errors are appended to errs rather
// than aborting the scan immediately, so a single pass can report
// every malformed lexeme (spec.md §4.E, §7).
func (s *Scanner) Init(file *token.File, src []byte, language *lang.Language, errs *errors.List) {
	s.file = file
	s.src = src
	s.lang = language
	s.errs = errs
	s.ErrorCount = 0

	s.offset = 0
	s.rdOffset = 0
	s.ch = ' '
	s.next()
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = eof
	}
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(offset int, format string, args ...any) {
	s.ErrorCount++
	s.errs.AddNewf(s.file.Pos(offset), format, args...)
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentRune(ch rune) bool { return isLetter(ch) || isDigit(ch) }

func (s *Scanner) skipWhitespace() {
	for {
		switch s.ch {
		case ' ', '\t', '\r', '\n':
			s.next()
		case '/':
			switch s.peek() {
			case '/':
				s.skipLineComment()
			case '*':
				s.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch != eof {
		s.next()
	}
}

func (s *Scanner) skipBlockComment() {
	offs := s.offset
	s.next() // consume '/'
	s.next() // consume '*'
	for {
		if s.ch == eof {
			s.error(offs, "comment not terminated")
			return
		}
		if s.ch == '*' && s.peek() == '/' {
			s.next()
			s.next()
			return
		}
		s.next()
	}
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isIdentRune(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanKeyword scans a "#"-prefixed lexeme; '#' has already been
// consumed into offs. Per spec.md §4.E the lexeme continues while
// alphanumeric or '-' and must match the closed keyword set.
func (s *Scanner) scanKeyword(offs int) (token.Token, string) {
	for isIdentRune(s.ch) || s.ch == '-' {
		s.next()
	}
	lit := string(s.src[offs:s.offset])
	if !token.Keywords[lit] {
		s.error(offs, "unknown keyword %q", lit)
		return token.ILLEGAL, lit
	}
	return token.KEYWORD, lit
}

// scanNumber scans an optionally-signed integer or decimal literal:
// [+-]? digit+ ("." digit+)? (spec.md §4.E).
func (s *Scanner) scanNumber() string {
	offs := s.offset
	if s.ch == '+' || s.ch == '-' {
		s.next()
	}
	start := s.offset
	for isDigit(s.ch) {
		s.next()
	}
	if s.offset == start {
		s.error(offs, "malformed number literal")
	}
	if s.ch == '.' {
		s.next()
		fracStart := s.offset
		for isDigit(s.ch) {
			s.next()
		}
		if s.offset == fracStart {
			s.error(offs, "malformed number literal: expected digits after '.'")
		}
	}
	return string(s.src[offs:s.offset])
}

// scanString scans a "..."-delimited string with backslash escapes;
// the opening quote has already been consumed. It may span lines
// (spec.md §4.E).
func (s *Scanner) scanString() string {
	offs := s.offset - 1
	var b strings.Builder
	for {
		switch s.ch {
		case eof:
			s.error(offs, "string literal not terminated")
			return b.String()
		case '"':
			s.next()
			return b.String()
		case '\\':
			s.next()
			if s.ch == eof {
				s.error(offs, "string literal not terminated")
				return b.String()
			}
			b.WriteRune(s.ch)
			s.next()
		default:
			b.WriteRune(s.ch)
			s.next()
		}
	}
}

const mdDelim = "```"

// scanStringMD scans a "```"-delimited markdown string literal; the
// opening "```" has already been consumed. Same escape rule as
// scanString (spec.md §4.E).
func (s *Scanner) scanStringMD() string {
	offs := s.offset - len(mdDelim)
	var b strings.Builder
	for {
		switch {
		case s.ch == eof:
			s.error(offs, "markdown string literal not terminated")
			return b.String()
		case s.ch == '`' && s.hasMDDelimAhead():
			s.next()
			s.next()
			s.next()
			return b.String()
		case s.ch == '\\':
			s.next()
			if s.ch == eof {
				s.error(offs, "markdown string literal not terminated")
				return b.String()
			}
			b.WriteRune(s.ch)
			s.next()
		default:
			b.WriteRune(s.ch)
			s.next()
		}
	}
}

func (s *Scanner) hasMDDelimAhead() bool {
	if s.offset+len(mdDelim) > len(s.src) {
		return false
	}
	return string(s.src[s.offset:s.offset+len(mdDelim)]) == mdDelim
}

// Scan returns the next token's position, kind, and literal text. The
// end of input is reported as token.EOF.
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
	s.skipWhitespace()
	offset := s.offset
	pos = s.file.Pos(offset)

	switch ch := s.ch; {
	case ch == eof:
		return pos, token.EOF, ""
	case ch == '#':
		s.next()
		tok, lit = s.scanKeyword(offset)
		return pos, tok, lit
	case isLetter(ch):
		lit = s.scanIdentifier()
		if s.lang != nil {
			if _, _, ok := s.lang.ClassByName(lit); ok {
				return pos, token.CLASS, lit
			}
		}
		return pos, token.IDENTIFIER, lit
	case isDigit(ch):
		lit = s.scanNumber()
		return pos, token.NUMBER, lit
	case (ch == '+' || ch == '-') && isDigit(peekRune(s.src, s.rdOffset)):
		lit = s.scanNumber()
		return pos, token.NUMBER, lit
	case ch == '"':
		s.next()
		lit = s.scanString()
		return pos, token.STRING, lit
	case ch == '`' && s.hasMDDelimAhead():
		s.next()
		s.next()
		s.next()
		lit = s.scanStringMD()
		return pos, token.STRING_MD, lit
	default:
		s.next()
		switch ch {
		case '{':
			return pos, token.SCOPE_ENTER, "{"
		case '}':
			return pos, token.SCOPE_EXIT, "}"
		case '=':
			return pos, token.ASSIGN, "="
		case '(':
			return pos, token.PAREN_OPEN, "("
		case ')':
			return pos, token.PAREN_CLOSE, ")"
		case ',':
			return pos, token.COMMA, ","
		case ';':
			return pos, token.SEMICOLON, ";"
		default:
			s.error(offset, "invalid character %q", ch)
			return pos, token.ILLEGAL, string(ch)
		}
	}
}

func peekRune(src []byte, at int) rune {
	if at >= len(src) {
		return eof
	}
	return rune(src[at])
}
