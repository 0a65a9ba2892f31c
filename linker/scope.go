package linker

import (
	"sort"

	"github.com/epixode/epic-linker/errors"
)

// Kind categorizes a published name.
type Kind string

const (
	KindValue    Kind = "value"
	KindSelector Kind = "selector"
	KindAction   Kind = "action"
	KindView     Kind = "view"
)

// Scope is a safe namespace accessor: reads of undeclared names fail with a
// named error instead of silently returning a zero value. The same type backs
// the global namespace and each bundle's local dependency view.
//
// Views claim their name at declaration time but receive their value only
// once selectors are bound, so an entry may exist without a value.
type Scope struct {
	entries map[string]scopeEntry
	label   string
}

type scopeEntry struct {
	value any
	kind  Kind
	bound bool
}

// NewScope creates an empty scope. The label shows up in diagnostics.
func NewScope(label string) *Scope {
	return &Scope{
		entries: make(map[string]scopeEntry),
		label:   label,
	}
}

// Get returns the value published under name. A name never declared here
// fails with a not-found error; a declared name whose value is not bound yet
// fails with an unresolved error.
func (s *Scope) Get(name string) (any, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseResolve, s.label+" scope name", name)
	}
	if !e.bound {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnresolved).
			Name(name).
			Detail("not available in %s scope", s.label).
			Build()
	}
	return e.value, nil
}

// MustGet is Get for contexts where a missing name is a programming error.
func (s *Scope) MustGet(name string) any {
	v, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether name is declared and bound in this scope.
func (s *Scope) Has(name string) bool {
	e, ok := s.entries[name]
	return ok && e.bound
}

// Kind returns the category of a declared name.
func (s *Scope) Kind(name string) (Kind, bool) {
	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return e.kind, true
}

// Names returns all declared names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// declare claims a name under a kind without binding a value. A second claim
// for the same name fails.
func (s *Scope) declare(name string, kind Kind) error {
	if _, ok := s.entries[name]; ok {
		return errors.DuplicateName(name)
	}
	s.entries[name] = scopeEntry{kind: kind}
	return nil
}

// bind assigns the value of an already-declared name.
func (s *Scope) bind(name string, value any) {
	e := s.entries[name]
	e.value = value
	e.bound = true
	s.entries[name] = e
}

// put copies a resolved entry into a local view. Unlike declare it is
// idempotent: resolving the same name for the same view twice is harmless.
func (s *Scope) put(name string, kind Kind, value any) {
	s.entries[name] = scopeEntry{kind: kind, value: value, bound: true}
}
