package node

import "strings"

// Lookup descends a forest of root nodes along a "/"-separated path,
// matching each segment against a node name (spec.md §4.I, §8
// property 6). It returns false as soon as any segment has no match,
// rather than partially resolving.
func Lookup(roots []*Node, path string) (*Node, bool) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil, false
	}

	var cur *Node
	siblings := roots
	for _, seg := range segments {
		found := false
		for _, n := range siblings {
			if n.Name == seg {
				cur, siblings, found = n, n.children, true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return cur, true
}

// ByClass returns the root-level nodes whose Class equals class, in
// insertion order (spec.md §4.I "objects-by-class").
func ByClass(roots []*Node, class string) []*Node {
	var out []*Node
	for _, n := range roots {
		if n.Class == class {
			out = append(out, n)
		}
	}
	return out
}
