package eclangcfg

import (
	"testing"

	"github.com/A31Nesta/EcLang/value"
)

const demoYAML = `
name: demo
sourceExt: .elt
compiledExt: .elc
identifier: "ECLT1"
classes:
  - name: Object
    attributes:
      - name: name
        type: string
      - name: count
        type: int32
      - name: pos
        type: vec3f
      - name: note
        type: string_md
`

func TestLoadLanguage(t *testing.T) {
	l, err := LoadLanguage([]byte(demoYAML))
	if err != nil {
		t.Fatalf("LoadLanguage failed: %v", err)
	}
	if l.Name != "demo" || l.SourceExt != ".elt" || l.CompiledExt != ".elc" {
		t.Fatalf("got %+v", l)
	}
	if string(l.Identifier) != "ECLT1" {
		t.Fatalf("identifier = %q, want ECLT1", l.Identifier)
	}

	class, id, ok := l.ClassByName("Object")
	if !ok || id != 0 {
		t.Fatalf("ClassByName(Object) = %v, %d, %v", class, id, ok)
	}
	cases := []struct {
		name string
		typ  value.Type
	}{
		{"name", value.STRING},
		{"count", value.INT32},
		{"pos", value.VEC3F},
		{"note", value.STR_MD},
	}
	for _, c := range cases {
		_, typ, ok := class.AttrByName(c.name)
		if !ok || typ != c.typ {
			t.Errorf("attribute %q: type = %v, ok = %v, want %v", c.name, typ, ok, c.typ)
		}
	}
}

func TestLoadLanguageHexIdentifier(t *testing.T) {
	doc := `
name: demo
sourceExt: .elt
compiledExt: .elc
identifierHex: "45434c5431"
classes: []
`
	l, err := LoadLanguage([]byte(doc))
	if err != nil {
		t.Fatalf("LoadLanguage failed: %v", err)
	}
	if string(l.Identifier) != "ECLT1" {
		t.Fatalf("identifier = %q, want ECLT1", l.Identifier)
	}
}

func TestLoadLanguageRejectsUnknownType(t *testing.T) {
	doc := `
name: demo
identifier: "X"
classes:
  - name: Bad
    attributes:
      - name: thing
        type: nonsense
`
	if _, err := LoadLanguage([]byte(doc)); err == nil {
		t.Fatal("expected an error for an unknown attribute type")
	}
}

func TestLoadLanguageRejectsMissingIdentifier(t *testing.T) {
	doc := `
name: demo
classes: []
`
	if _, err := LoadLanguage([]byte(doc)); err == nil {
		t.Fatal("expected an error for a language with no identifier bytes")
	}
}

func TestLoadLanguageRejectsInvalidYAML(t *testing.T) {
	if _, err := LoadLanguage([]byte("not: [valid")); err == nil {
		t.Fatal("expected a YAML parse error")
	}
}

func TestLoadManifest(t *testing.T) {
	doc := `
languages:
  - demo.lang.yaml
  - ../shared/other.lang.yaml
`
	paths, err := LoadManifest([]byte(doc))
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	want := []string{"demo.lang.yaml", "../shared/other.lang.yaml"}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestLoadManifestRejectsEmpty(t *testing.T) {
	if _, err := LoadManifest([]byte("languages: []")); err == nil {
		t.Fatal("expected an error for a manifest with no languages")
	}
}
