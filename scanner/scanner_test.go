package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/A31Nesta/EcLang/errors"
	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/token"
	"github.com/A31Nesta/EcLang/value"
)

func testLanguage(t *testing.T) *lang.Language {
	t.Helper()
	str, err := lang.NewClass("StringTests", lang.Attribute{Name: "string", Type: value.STRING})
	if err != nil {
		t.Fatal(err)
	}
	vec, err := lang.NewClass("VectorTests", lang.Attribute{Name: "vec3f", Type: value.VEC3F})
	if err != nil {
		t.Fatal(err)
	}
	l, err := lang.NewLanguage("test", ".elt", ".elc", []byte("ECLT\x31"), str, vec)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func kinds(toks []Tok) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexMinimalSource(t *testing.T) {
	src := `StringTests demo { string = "hi"; }`
	file := token.NewFile("demo.elt", len(src))
	toks, err := Lex(file, []byte(src), testLanguage(t))
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	want := []token.Token{
		token.CLASS, token.IDENTIFIER, token.SCOPE_ENTER,
		token.IDENTIFIER, token.ASSIGN, token.STRING, token.SEMICOLON,
		token.SCOPE_EXIT, token.EOF,
	}
	got := kinds(toks)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexVectorConstructor(t *testing.T) {
	src := `VectorTests v { vec3f = vec3(1,2,3); }`
	file := token.NewFile("v.elt", len(src))
	toks, err := Lex(file, []byte(src), testLanguage(t))
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	// vec3 is not a registered class, so it lexes as IDENTIFIER.
	var sawIdentVec3, sawNumber3 bool
	for _, tk := range toks {
		if tk.Kind == token.IDENTIFIER && tk.Lit == "vec3" {
			sawIdentVec3 = true
		}
		if tk.Kind == token.NUMBER && tk.Lit == "3" {
			sawNumber3 = true
		}
	}
	if !sawIdentVec3 || !sawNumber3 {
		t.Fatalf("expected vec3 identifier and 3 number literal in %v", toks)
	}
}

func TestLexStringMarkdownAndComments(t *testing.T) {
	src := "// a comment\nStringTests x { string = " + "```hello\nworld```" + "; } /* trailer */"
	file := token.NewFile("md.elt", len(src))
	toks, err := Lex(file, []byte(src), testLanguage(t))
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.STRING_MD && tk.Lit == "hello\nworld" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a STRING_MD token with body %q in %v", "hello\nworld", toks)
	}
}

func TestLexNegativeNumber(t *testing.T) {
	file := token.NewFile("n.elt", len("-12.5"))
	var errs errors.List
	var s Scanner
	s.Init(file, []byte("-12.5"), nil, &errs)
	_, tok, lit := s.Scan()
	if tok != token.NUMBER || lit != "-12.5" {
		t.Fatalf("Scan() = %v %q, want NUMBER -12.5", tok, lit)
	}
}

func TestLexIllegalCharacterAccumulates(t *testing.T) {
	src := `StringTests x { string ~ "hi"; }`
	file := token.NewFile("bad.elt", len(src))
	_, err := Lex(file, []byte(src), testLanguage(t))
	if err == nil {
		t.Fatalf("expected a lex error for the illegal '~' character")
	}
}
