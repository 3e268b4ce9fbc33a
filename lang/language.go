package lang

import (
	"bytes"
	"fmt"
)

// maxClasses is the cap from spec.md §3.4: class ids are the ordinal
// position in the list, and the binary format reserves the byte value
// 255 to mean "custom class by name".
const maxClasses = 255

// Language binds a dialect name to its compiled-form identifier bytes
// and its ordered set of legal Classes (spec.md §3.4).
type Language struct {
	Name         string
	SourceExt    string
	CompiledExt  string
	Identifier   []byte
	classes      []*Class
	classByName  map[string]int
}

// NewLanguage validates and constructs a Language binding.
//
// Invariants enforced (spec.md §3.4, §8 property 4):
//   - identifier is non-empty and contains no zero byte, since zero
//     terminates the identifier in the binary stream header;
//   - at most 255 classes are registered, since class id 255 is
//     reserved to mean "custom class by name".
func NewLanguage(name, sourceExt, compiledExt string, identifier []byte, classes ...*Class) (*Language, error) {
	if len(identifier) == 0 {
		return nil, fmt.Errorf("lang: language %q has empty identifier bytes", name)
	}
	if bytes.IndexByte(identifier, 0) >= 0 {
		return nil, fmt.Errorf("lang: language %q identifier bytes contain a zero byte", name)
	}
	if len(classes) > maxClasses {
		return nil, fmt.Errorf("lang: language %q declares %d classes, exceeding the %d-class cap", name, len(classes), maxClasses)
	}
	l := &Language{
		Name:        name,
		SourceExt:   sourceExt,
		CompiledExt: compiledExt,
		Identifier:  append([]byte(nil), identifier...),
		classes:     append([]*Class(nil), classes...),
		classByName: make(map[string]int, len(classes)),
	}
	for i, c := range classes {
		if _, dup := l.classByName[c.Name]; dup {
			return nil, fmt.Errorf("lang: language %q declares class %q more than once", name, c.Name)
		}
		l.classByName[c.Name] = i
	}
	return l, nil
}

// Classes returns the language's classes in declaration (and thus
// binary class-id) order. Callers must not mutate the result.
func (l *Language) Classes() []*Class { return l.classes }

// ClassByName resolves a class name to its Class definition and
// ordinal id.
func (l *Language) ClassByName(name string) (class *Class, id int, ok bool) {
	i, ok := l.classByName[name]
	if !ok {
		return nil, 0, false
	}
	return l.classes[i], i, true
}

// ClassByID resolves an ordinal class id back to its Class
// definition, as the binary decoder needs (spec.md §4.H).
func (l *Language) ClassByID(id int) (*Class, bool) {
	if id < 0 || id >= len(l.classes) {
		return nil, false
	}
	return l.classes[id], true
}

// HasPrefix reports whether data begins with this language's
// identifier bytes, used by the coordinator's compiled-form detection
// (spec.md §4.I, step 1).
func (l *Language) HasPrefix(data []byte) bool {
	return bytes.HasPrefix(data, l.Identifier)
}
