package node

import (
	"testing"

	"github.com/A31Nesta/EcLang/value"
)

func buildTree() []*Node {
	a := New("Container", "a", 0)
	b := New("Container", "b", 0)
	c := New("Widget", "c", 0)
	c.AddAttr(Attr{Name: "string", Type: value.STRING, Value: value.NewString("hi")})
	b.AddChild(c)
	return []*Node{a, b}
}

func TestLookupDescendsByName(t *testing.T) {
	roots := buildTree()
	got, ok := Lookup(roots, "b/c")
	if !ok || got.Name != "c" {
		t.Fatalf("Lookup(b/c) = %v, %v", got, ok)
	}
	if _, ok := Lookup(roots, "b/missing"); ok {
		t.Fatalf("Lookup(b/missing) should fail")
	}
	if _, ok := Lookup(roots, "missing"); ok {
		t.Fatalf("Lookup(missing) should fail")
	}
}

func TestByClassAndAttrByName(t *testing.T) {
	roots := buildTree()
	got, ok := Lookup(roots, "b/c")
	if !ok {
		t.Fatal("expected to find b/c")
	}
	attr, ok := got.AttrByName("string")
	if !ok || attr.Value.Type() != value.STRING {
		t.Fatalf("AttrByName(string) = %v, %v", attr, ok)
	}

	byClass := ByClass(roots, "Container")
	if len(byClass) != 2 {
		t.Fatalf("ByClass(Container) returned %d nodes, want 2", len(byClass))
	}
}

func TestOwnershipTransferByMove(t *testing.T) {
	// A child coordinator's roots are handed to the parent by moving
	// the slice header, per spec.md §3.6/§9 — no flag needed on Node.
	childRoots := buildTree()
	parent := New("Root", "root", 0)
	for _, r := range childRoots {
		parent.AddChild(r)
	}
	if len(parent.Children()) != 2 {
		t.Fatalf("expected the child roots to be grafted onto parent")
	}
}
