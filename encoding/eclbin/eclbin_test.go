package eclbin

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/value"
)

// treeSnapshot is a cmp-friendly, exported-only projection of a
// *node.Node subtree, used so TestEncodeDecodeRoundTrip can assert
// full tree equality instead of checking a few fields by hand.
type treeSnapshot struct {
	Class    string
	Name     string
	Attrs    map[string]string
	Children []treeSnapshot
}

func snapshot(n *node.Node) treeSnapshot {
	attrs := make(map[string]string, len(n.Attrs()))
	for _, a := range n.Attrs() {
		attrs[a.Name] = a.Value.String()
	}
	var children []treeSnapshot
	for _, c := range n.Children() {
		children = append(children, snapshot(c))
	}
	return treeSnapshot{Class: n.Class, Name: n.Name, Attrs: attrs, Children: children}
}

func snapshotAll(nodes []*node.Node) []treeSnapshot {
	out := make([]treeSnapshot, len(nodes))
	for i, n := range nodes {
		out[i] = snapshot(n)
	}
	return out
}

type noIncludeCtx struct{ fileID int }

func (c noIncludeCtx) FileID() int { return c.fileID }
func (c noIncludeCtx) Include(path string) ([]*node.Node, int, error) {
	return nil, 0, fmt.Errorf("no includes in this test: %s", path)
}
func (c noIncludeCtx) Template(path string) ([]*node.Node, []*node.Node, int, error) {
	return nil, nil, 0, fmt.Errorf("no templates in this test: %s", path)
}

func testLanguage(t *testing.T) *lang.Language {
	t.Helper()
	str, err := lang.NewClass("StringTests", lang.Attribute{Name: "string", Type: value.STRING})
	if err != nil {
		t.Fatal(err)
	}
	l, err := lang.NewLanguage("test", ".elt", ".elc", []byte("ECLT\x31"), str)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// TestEncodeMinimalSource reproduces spec.md scenario S1's exact byte
// sequence for a one-node, one-attribute tree.
func TestEncodeMinimalSource(t *testing.T) {
	lng := testLanguage(t)
	demo := node.New("StringTests", "demo", 0)
	demo.AddAttr(node.Attr{Name: "string", Type: value.STRING, Value: value.NewString("hi")})

	got, err := Encode(EncodeInput{Language: lng, Roots: []*node.Node{demo}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{
		'E', 'C', 'L', 'T', 0x31, 0x00,
		0x01, 0x00, 0x00, 'd', 'e', 'm', 'o', 0x00,
		0x03,
		0x02, 0x00, 0x00, 'h', 'i', 0x00,
		0x04,
	}
	if string(got) != string(want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}
}

func TestDecodeMinimalSource(t *testing.T) {
	lng := testLanguage(t)
	body := []byte{
		0x01, 0x00, 0x00, 'd', 'e', 'm', 'o', 0x00,
		0x03,
		0x02, 0x00, 0x00, 'h', 'i', 0x00,
		0x04,
	}
	res, err := Decode(body, lng, noIncludeCtx{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(res.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(res.Roots))
	}
	n := res.Roots[0]
	if n.Class != "StringTests" || n.Name != "demo" {
		t.Fatalf("root = %s %s, want StringTests demo", n.Class, n.Name)
	}
	attr, ok := n.AttrByName("string")
	if !ok {
		t.Fatal("missing string attribute")
	}
	if s, _ := attr.Value.Str(); s != "hi" {
		t.Errorf("string = %q, want hi", s)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lng := testLanguage(t)
	root := node.New("StringTests", "root", 0)
	root.AddAttr(node.Attr{Name: "string", Type: value.STRING, Value: value.NewString("outer")})
	child := node.New("StringTests", "child", 0)
	child.AddAttr(node.Attr{Name: "string", Type: value.STRING, Value: value.NewString("inner")})
	root.AddChild(child)

	encoded, err := Encode(EncodeInput{Language: lng, Roots: []*node.Node{root}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	header := append(append([]byte(nil), lng.Identifier...), 0)
	body := encoded[len(header):]

	res, err := Decode(body, lng, noIncludeCtx{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []treeSnapshot{{
		Class: "StringTests", Name: "root",
		Attrs: map[string]string{"string": `"outer"`},
		Children: []treeSnapshot{{
			Class: "StringTests", Name: "child",
			Attrs: map[string]string{"string": `"inner"`},
		}},
	}}
	if diff := cmp.Diff(want, snapshotAll(res.Roots)); diff != "" {
		t.Errorf("round-tripped tree mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeOmitsScopeForChildlessAttributelessNode(t *testing.T) {
	lng := testLanguage(t)
	bare := node.New("StringTests", "bare", 0)

	got, err := Encode(EncodeInput{Language: lng, Roots: []*node.Node{bare}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{
		'E', 'C', 'L', 'T', 0x31, 0x00,
		0x01, 0x00, 0x00, 'b', 'a', 'r', 'e', 0x00,
	}
	if string(got) != string(want) {
		t.Fatalf("Encode() = %v, want %v (no SCOPE_ENTER/EXIT pair)", got, want)
	}
}

func TestEncodeCustomClassAndAttribute(t *testing.T) {
	lng := testLanguage(t)
	n := node.New("Unregistered", "x", 0)
	n.AddAttr(node.Attr{Name: "mystery", Type: value.INT32, Value: value.NewInt32(7)})

	got, err := Encode(EncodeInput{Language: lng, Roots: []*node.Node{n}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	res, err := Decode(got[len(lng.Identifier)+1:], lng, noIncludeCtx{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if res.Roots[0].Class != "Unregistered" {
		t.Fatalf("class = %q, want Unregistered", res.Roots[0].Class)
	}
	attr, ok := res.Roots[0].AttrByName("mystery")
	if !ok {
		t.Fatal("missing mystery attribute")
	}
	if s, _ := attr.Value.Str(); s != "7" {
		t.Errorf("mystery = %q, want the canonical textual form \"7\"", s)
	}
}

func TestDecodeUnknownClassIDFails(t *testing.T) {
	lng := testLanguage(t)
	body := []byte{0x01, 0x09, 0x00, 'x', 0x00}
	if _, err := Decode(body, lng, noIncludeCtx{}); err == nil {
		t.Fatal("expected an error decoding an unregistered class id")
	}
}
