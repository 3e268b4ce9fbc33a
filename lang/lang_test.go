package lang

import (
	"strings"
	"testing"

	"github.com/A31Nesta/EcLang/value"
)

func TestClassAttributeCap(t *testing.T) {
	attrs := make([]Attribute, 257)
	for i := range attrs {
		attrs[i] = Attribute{Name: strings.Repeat("a", i+1), Type: value.INT32}
	}
	if _, err := NewClass("Overflow", attrs...); err == nil {
		t.Fatalf("expected an error for 257 attributes")
	}
}

func TestLanguageClassCap(t *testing.T) {
	classes := make([]*Class, 256)
	for i := range classes {
		c, err := NewClass(strings.Repeat("C", i+1))
		if err != nil {
			t.Fatal(err)
		}
		classes[i] = c
	}
	if _, err := NewLanguage("test", ".elt", ".elc", []byte("TEST"), classes...); err == nil {
		t.Fatalf("expected an error for 256 classes")
	}
}

func TestLanguageIdentifierInvariants(t *testing.T) {
	if _, err := NewLanguage("test", ".elt", ".elc", nil); err == nil {
		t.Fatalf("expected an error for empty identifier")
	}
	if _, err := NewLanguage("test", ".elt", ".elc", []byte{'A', 0, 'B'}); err == nil {
		t.Fatalf("expected an error for a zero byte in identifier")
	}
}

func TestClassAndAttributeLookup(t *testing.T) {
	str, err := NewClass("StringTests", Attribute{Name: "string", Type: value.STRING})
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewLanguage("test", ".elt", ".elc", []byte("ECLT\x31"), str)
	if err != nil {
		t.Fatal(err)
	}

	class, id, ok := l.ClassByName("StringTests")
	if !ok || id != 0 || class != str {
		t.Fatalf("ClassByName = %v, %d, %v", class, id, ok)
	}
	if _, _, ok := l.ClassByName("Nope"); ok {
		t.Fatalf("ClassByName(Nope) should fail")
	}

	attrID, typ, ok := str.AttrByName("string")
	if !ok || attrID != 0 || typ != value.STRING {
		t.Fatalf("AttrByName = %d, %v, %v", attrID, typ, ok)
	}
	if !l.HasPrefix([]byte("ECLT\x31rest")) {
		t.Fatalf("HasPrefix should match the identifier prefix")
	}
}

func TestRegistryDetection(t *testing.T) {
	r := NewRegistry()
	test, _ := NewLanguage("test", ".elt", ".elc", []byte("ECLT\x31"))
	if err := r.Register(test); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(test); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if got, ok := r.Lookup("test"); !ok || got != test {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if _, ok := r.DetectByIdentifier([]byte("nope")); ok {
		t.Fatalf("DetectByIdentifier should not match unrelated bytes")
	}
	if got, ok := r.DetectByIdentifier([]byte("ECLT\x31\x00")); !ok || got != test {
		t.Fatalf("DetectByIdentifier = %v, %v", got, ok)
	}
}
