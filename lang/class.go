// Package lang implements the Language/Class/Attribute registry of
// spec.md §3.3–3.4: the schema against which source is lexed and
// parsed and against which binary attribute ids are resolved.
package lang

import (
	"fmt"

	"github.com/A31Nesta/EcLang/value"
)

// maxAttributesPerClass is the hard cap from spec.md §3.3: a node's
// attribute id must fit in one byte, and 0xFF is reserved in the
// binary format to mean "custom attribute by name".
const maxAttributesPerClass = 256

// Attribute is a (name, Type) pair in a Class definition (spec.md
// §3.2).
type Attribute struct {
	Name string
	Type value.Type
}

// Class is a named node type with an ordered list of Attributes
// (spec.md §3.3). Attribute lookup by name returns a stable ordinal
// id in [0, 255].
type Class struct {
	Name  string
	attrs []Attribute
	index map[string]int
}

// NewClass builds a Class from an ordered attribute list. It fails if
// attrs exceeds the 256-attribute cap (spec.md §8 property 4) or
// contains a duplicate attribute name.
func NewClass(name string, attrs ...Attribute) (*Class, error) {
	if len(attrs) > maxAttributesPerClass {
		return nil, fmt.Errorf("lang: class %q declares %d attributes, exceeding the %d-attribute cap", name, len(attrs), maxAttributesPerClass)
	}
	c := &Class{
		Name:  name,
		attrs: append([]Attribute(nil), attrs...),
		index: make(map[string]int, len(attrs)),
	}
	for i, a := range attrs {
		if !a.Type.IsValid() {
			return nil, fmt.Errorf("lang: class %q attribute %q has invalid type %v", name, a.Name, a.Type)
		}
		if _, dup := c.index[a.Name]; dup {
			return nil, fmt.Errorf("lang: class %q declares attribute %q more than once", name, a.Name)
		}
		c.index[a.Name] = i
	}
	return c, nil
}

// Attrs returns the class's attributes in declaration order. Callers
// must not mutate the result.
func (c *Class) Attrs() []Attribute { return c.attrs }

// AttrByName resolves an attribute name to its ordinal id and
// declared Type.
func (c *Class) AttrByName(name string) (id int, typ value.Type, ok bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, 0, false
	}
	return i, c.attrs[i].Type, true
}

// AttrByID resolves an ordinal attribute id back to its Attribute
// definition, as the binary decoder needs (spec.md §4.H).
func (c *Class) AttrByID(id int) (Attribute, bool) {
	if id < 0 || id >= len(c.attrs) {
		return Attribute{}, false
	}
	return c.attrs[id], true
}
