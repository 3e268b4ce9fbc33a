// Package eclangcfg loads a [lang.Language] binding from a YAML
// document, the same way cue-lang-cue's encoding/yaml package turns
// host-authored YAML into CUE values: a thin, declarative front end
// over the registry types in package lang, so a Language binding can
// ship as data instead of Go code.
package eclangcfg

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/value"
)

type languageDoc struct {
	Name          string     `yaml:"name"`
	SourceExt     string     `yaml:"sourceExt"`
	CompiledExt   string     `yaml:"compiledExt"`
	Identifier    string     `yaml:"identifier"`
	IdentifierHex string     `yaml:"identifierHex"`
	Classes       []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name       string    `yaml:"name"`
	Attributes []attrDoc `yaml:"attributes"`
}

type attrDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadLanguage parses a YAML document into a *lang.Language, per
// spec.md §3.4's Language shape:
//
//	name: demo
//	sourceExt: .elt
//	compiledExt: .elc
//	identifier: "ECLT1"   # raw bytes of this string
//	# or: identifierHex: "45434c5431"
//	classes:
//	  - name: Object
//	    attributes:
//	      - name: name
//	        type: string
//	      - name: pos
//	        type: vec3f
func LoadLanguage(data []byte) (*lang.Language, error) {
	var doc languageDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("eclangcfg: parsing language YAML: %w", err)
	}

	identifier, err := resolveIdentifier(doc)
	if err != nil {
		return nil, err
	}

	classes := make([]*lang.Class, 0, len(doc.Classes))
	for _, cd := range doc.Classes {
		attrs := make([]lang.Attribute, 0, len(cd.Attributes))
		for _, ad := range cd.Attributes {
			typ, ok := value.TypeByName(strings.ToLower(ad.Type))
			if !ok {
				return nil, fmt.Errorf("eclangcfg: class %q attribute %q has unknown type %q", cd.Name, ad.Name, ad.Type)
			}
			attrs = append(attrs, lang.Attribute{Name: ad.Name, Type: typ})
		}
		class, err := lang.NewClass(cd.Name, attrs...)
		if err != nil {
			return nil, fmt.Errorf("eclangcfg: %w", err)
		}
		classes = append(classes, class)
	}

	l, err := lang.NewLanguage(doc.Name, doc.SourceExt, doc.CompiledExt, identifier, classes...)
	if err != nil {
		return nil, fmt.Errorf("eclangcfg: %w", err)
	}
	return l, nil
}

// manifestDoc is a register-pass document: a list of language-binding
// YAML files to load before any source or compiled file is touched.
// This is the data-driven analog of the original EcLang demo's
// register.elt pre-pass, which registered every Language a test run
// needed before compiling the files under test.
type manifestDoc struct {
	Languages []string `yaml:"languages"`
}

// LoadManifest parses a register-pass manifest and returns the paths
// of the language-binding YAML files it lists, in declaration order.
func LoadManifest(data []byte) ([]string, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("eclangcfg: parsing manifest YAML: %w", err)
	}
	if len(doc.Languages) == 0 {
		return nil, fmt.Errorf("eclangcfg: manifest declares no languages")
	}
	return doc.Languages, nil
}

func resolveIdentifier(doc languageDoc) ([]byte, error) {
	switch {
	case doc.IdentifierHex != "":
		b, err := hex.DecodeString(doc.IdentifierHex)
		if err != nil {
			return nil, fmt.Errorf("eclangcfg: language %q identifierHex: %w", doc.Name, err)
		}
		return b, nil
	case doc.Identifier != "":
		return []byte(doc.Identifier), nil
	default:
		return nil, fmt.Errorf("eclangcfg: language %q declares no identifier bytes", doc.Name)
	}
}
