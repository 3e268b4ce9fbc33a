// Package eclang implements the coordinator of spec.md §4.I: given
// (name, bytes), it auto-detects source versus compiled form, selects
// a [lang.Language], drives the [parser] or [eclbin] decoder to build
// a [node.Node] tree, and later drives the encoder or decompiler back
// to bytes or text. It also mediates #include/#include-dyn/#template/
// #template-dyn by loading and fully compiling referenced files
// through a caller-supplied [FileLoader], and #register through a
// shared [alias.Store].
//
// This mirrors cue-lang-cue's top-level cue package: a Runtime-like
// object that owns the Language/Class registry and drives the whole
// pipeline, rather than exposing the lexer/parser/encoder as loose
// functions the caller must sequence correctly.
package eclang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/A31Nesta/EcLang/alias"
	"github.com/A31Nesta/EcLang/diag"
	"github.com/A31Nesta/EcLang/encoding/eclbin"
	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/parser"
	"github.com/A31Nesta/EcLang/token"
)

// FileLoader is the file-system collaborator spec.md §1 keeps out of
// the core: given a resolved path, return its name (as it should
// appear in diagnostics) and contents.
type FileLoader interface {
	Load(path string) (name string, data []byte, err error)
}

// EcLang is one compiled file's coordinator state (spec.md §3.6).
// Nested #include*/#template* directives construct further EcLang
// values sharing this one's Language registry, alias store, loader,
// diagnostic sink, and cycle-detection visited-set.
type EcLang struct {
	registry *lang.Registry
	aliases  *alias.Store
	loader   FileLoader
	sink     diag.Sink

	compileID string
	visited   map[string]bool

	fileID            int
	includedFilenames []string // index 0 unused; k -> 'i'|'t' + resolved path

	language  *lang.Language
	wasSource bool

	roots        []*node.Node
	templatePath []*node.Node

	isIncluded bool
}

// New constructs a root coordinator. loader resolves #include*/
// #template* targets to bytes; sink receives diagnostics. Both the
// Language registry and the path-alias store are owned by this value
// and shared, by reference, with every nested coordinator it spawns —
// spec.md §5's "process-wide, effectively immutable after startup"
// state, scoped here to one root EcLang rather than a true package
// global, so that two EcLang roots never interfere (spec.md §9's
// "replace process-global state" note).
func New(loader FileLoader, sink diag.Sink) *EcLang {
	return &EcLang{
		registry: lang.NewRegistry(),
		aliases:  alias.NewStore(),
		loader:   loader,
		sink:     sink,
	}
}

// RegisterLanguage adds a Language binding to this coordinator's
// registry (the "register-language" configuration surface of spec.md
// §6).
func (e *EcLang) RegisterLanguage(l *lang.Language) error {
	return e.registry.Register(l)
}

// RegisterFilepath adds a path alias (the "register-filepath"
// configuration surface of spec.md §6, equivalent to a source-level
// `#register` directive issued by the host rather than by a file).
func (e *EcLang) RegisterFilepath(alias, path string) {
	e.aliases.Register(alias, path)
}

// FileID implements parser.FileContext/eclbin.FileContext.
func (e *EcLang) FileID() int { return e.fileID }

func (e *EcLang) newChild() *EcLang {
	return &EcLang{
		registry:          e.registry,
		aliases:           e.aliases,
		loader:            e.loader,
		sink:              e.sink,
		compileID:         e.compileID,
		visited:           e.visited,
		includedFilenames: []string{""},
	}
}

// Compile loads and fully parses/decodes (name, data), per spec.md
// §4.I. It is the entry point for the user-loaded root file; nested
// files are compiled through include/template below.
func (e *EcLang) Compile(name string, data []byte) error {
	e.compileID = uuid.NewString()
	e.visited = map[string]bool{name: true}
	e.fileID = 0
	e.includedFilenames = []string{""}
	e.sink.Infof("compile %s: starting (session %s)", name, e.compileID)
	if err := e.compileBytes(name, data); err != nil {
		return err
	}
	e.sink.Infof("compile %s: %d root object(s)", name, len(e.roots))
	return nil
}

// compileBytes detects the form of data and drives the parser or the
// binary decoder, storing the result on e.
func (e *EcLang) compileBytes(name string, data []byte) error {
	lng, wasSource, body, err := e.detect(data)
	if err != nil {
		e.sink.Errorf(token.NoPos, "%s: %v", name, err)
		return err
	}
	e.language = lng
	e.wasSource = wasSource

	if wasSource {
		file := token.NewFile(name, len(body))
		res, err := parser.Parse(file, body, lng, parserCtx{e})
		if err != nil {
			return fmt.Errorf("eclang: parsing %s: %w", name, err)
		}
		e.roots = res.Roots
		e.templatePath = res.TemplatePath
		return nil
	}

	res, err := eclbin.Decode(body, lng, decoderCtx{e})
	if err != nil {
		return fmt.Errorf("eclang: decoding %s: %w", name, err)
	}
	e.roots = res.Roots
	e.templatePath = res.TemplatePath
	return nil
}

// detect implements spec.md §4.I step 1/2: compiled-form identifier
// match first, then source-form "#language <name>" line.
func (e *EcLang) detect(data []byte) (lng *lang.Language, wasSource bool, body []byte, err error) {
	for _, l := range e.registry.Languages() {
		if l.HasPrefix(data) {
			rest := data[len(l.Identifier):]
			if len(rest) == 0 || rest[0] != 0 {
				return nil, false, nil, fmt.Errorf("malformed compiled header: missing terminator after identifier")
			}
			return l, false, rest[1:], nil
		}
	}

	line := data
	rest := []byte(nil)
	if nl := bytes.IndexByte(data, '\n'); nl >= 0 {
		line, rest = data[:nl], data[nl+1:]
	}
	text := strings.TrimSpace(string(line))
	kw, name, ok := strings.Cut(text, " ")
	if !ok || kw != "#language" {
		return nil, false, nil, fmt.Errorf("no identifier match and no leading #language line")
	}
	lng, ok = e.registry.Lookup(strings.TrimSpace(name))
	if !ok {
		return nil, false, nil, fmt.Errorf("unknown language %q", strings.TrimSpace(name))
	}
	return lng, true, rest, nil
}

// loadChild resolves pathOrAlias, guards against cycles, loads and
// fully compiles the referenced file as a child coordinator, and
// applies the dynamic-include file-id/tagging discipline of spec.md
// §4.F (degrading to static when the current file is itself a nested
// include).
func (e *EcLang) loadChild(pathOrAlias string, dyn bool, tag byte) (child *EcLang, fileID int, err error) {
	resolved := e.aliases.ResolvePath(pathOrAlias)
	if e.visited[resolved] {
		return nil, 0, fmt.Errorf("cyclic include/template detected at %q", resolved)
	}
	name, data, err := e.loader.Load(resolved)
	if err != nil {
		return nil, 0, fmt.Errorf("loading %q: %w", resolved, err)
	}

	e.visited[resolved] = true
	defer delete(e.visited, resolved)

	child = e.newChild()
	if dyn && e.fileID == 0 {
		fileID = len(e.includedFilenames)
		e.includedFilenames = append(e.includedFilenames, string(tag)+resolved)
	}
	child.fileID = fileID

	if err := child.compileBytes(name, data); err != nil {
		return nil, 0, err
	}
	child.isIncluded = true
	return child, fileID, nil
}

func (e *EcLang) include(pos token.Pos, pathOrAlias string, dyn bool) ([]*node.Node, int, error) {
	child, fid, err := e.loadChild(pathOrAlias, dyn, 'i')
	if err != nil {
		if pos.IsValid() {
			e.sink.Errorf(pos, "include %q: %v", pathOrAlias, err)
		}
		return nil, 0, err
	}
	return child.roots, fid, nil
}

func (e *EcLang) template(pos token.Pos, pathOrAlias string, dyn bool) ([]*node.Node, []*node.Node, int, error) {
	child, fid, err := e.loadChild(pathOrAlias, dyn, 't')
	if err != nil {
		if pos.IsValid() {
			e.sink.Errorf(pos, "template %q: %v", pathOrAlias, err)
		}
		return nil, nil, 0, err
	}
	return child.roots, child.templatePath, fid, nil
}

func (e *EcLang) registerAlias(alias, path string) {
	e.aliases.Register(alias, path)
}

// SaveCompiled encodes the tree back to the binary form (spec.md
// §4.I); only the user-loaded root (file id 0) may be serialized this
// way.
func (e *EcLang) SaveCompiled() ([]byte, error) {
	if err := e.requireRoot(); err != nil {
		return nil, err
	}
	return eclbin.Encode(eclbin.EncodeInput{
		Language:          e.language,
		Roots:             e.roots,
		IncludedFilenames: e.includedFilenames,
		TemplatePath:      e.templatePath,
	})
}

// requireRoot rejects Save* calls on a coordinator that was spawned to
// service a nested #include/#include-dyn/#template/#template-dyn
// rather than loaded directly by the caller: its tree has already been
// grafted into (or replaced by a reference from) the parent's, so
// serializing it on its own would silently duplicate or orphan that
// content. A static include shares its parent's file id (0), so the
// isIncluded flag, not just the file id, is what makes this check
// exact.
func (e *EcLang) requireRoot() error {
	if e.isIncluded {
		return fmt.Errorf("eclang: save requires the user-loaded root, not an included/templated file")
	}
	if e.fileID != 0 {
		return fmt.Errorf("eclang: save requires the user-loaded root, file id is %d", e.fileID)
	}
	return nil
}

// SaveSource decompiles the tree back to EcLang source text.
func (e *EcLang) SaveSource() (string, error) {
	if err := e.requireRoot(); err != nil {
		return "", err
	}
	return decompile(e)
}

// SaveEither picks compiled form iff this file was originally source,
// and source form iff it was originally compiled — the opposite of
// however it arrived (spec.md §4.I).
func (e *EcLang) SaveEither() ([]byte, error) {
	if e.wasSource {
		return e.SaveCompiled()
	}
	s, err := e.SaveSource()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// AllObjects returns every root-level node, in source order.
func (e *EcLang) AllObjects() []*node.Node { return e.roots }

// ObjectsByClass returns root-level nodes of the given class, in
// source order (spec.md §8 property 6).
func (e *EcLang) ObjectsByClass(class string) []*node.Node {
	return node.ByClass(e.roots, class)
}

// Object resolves a "a/b/c"-style path, descending by node name; the
// second result is false if any segment is unmatched (spec.md §8
// property 6).
func (e *EcLang) Object(path string) (*node.Node, bool) {
	return node.Lookup(e.roots, path)
}

// WasSource reports whether the compiled input was source text.
func (e *EcLang) WasSource() bool { return e.wasSource }

// Language returns the Language binding this coordinator detected.
func (e *EcLang) Language() *lang.Language { return e.language }
