// Package alias implements the path-alias store of spec.md §3.6/§5:
// a name-to-path mapping written by "#register" directives and read
// whenever the coordinator resolves a #include*/#template* path.
//
// spec.md §5 notes that the original store was process-wide singleton
// state and that two concurrent compilations would race on it; per
// spec.md §9's design note on replacing process-global state with an
// explicit environment value, Store here is an ordinary value owned
// by one [eclang.EcLang], not a package-level singleton, so each
// coordinator gets its own store and compilations no longer share
// mutable state unless the caller explicitly shares a *Store.
package alias

import "sync"

// Store maps a registered alias to the path it stands for.
type Store struct {
	mu   sync.RWMutex
	byAlias map[string]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byAlias: make(map[string]string)}
}

// Register binds alias to path, overwriting any previous binding, as
// "#register" does (spec.md §4.F).
func (s *Store) Register(alias, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byAlias == nil {
		s.byAlias = make(map[string]string)
	}
	s.byAlias[alias] = path
}

// Resolve returns the path an alias stands for, or ("", false) if
// alias was never registered.
func (s *Store) Resolve(alias string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byAlias[alias]
	return p, ok
}

// ResolvePath resolves path as an alias if one is registered under
// that exact name, otherwise returns path unchanged — the file loader
// convention from spec.md §4.F: "paths ... may be either literal
// paths or aliases ... the file loader resolves aliases before
// opening".
func (s *Store) ResolvePath(path string) string {
	if resolved, ok := s.Resolve(path); ok {
		return resolved
	}
	return path
}
