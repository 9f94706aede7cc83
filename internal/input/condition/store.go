package condition

import (
	"maps"
	"sync"
)

// Well-known context keys.
const (
	// InputFocus is true while focus is inside a text field.
	InputFocus = "inputFocus"

	// EditorFocus is true while the text editor has focus.
	EditorFocus = "editorFocus"
)

// Store holds named boolean context flags.
// Entries are overwritten, never removed.
type Store struct {
	mu     sync.RWMutex
	values map[string]bool
}

// NewStore creates an empty context store.
func NewStore() *Store {
	return &Store{values: make(map[string]bool)}
}

// Set sets a context key, overwriting any previous value.
func (s *Store) Set(name string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Get returns a context key's value. Absent keys are false.
func (s *Store) Get(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Evaluate parses and evaluates a when-expression against the store.
// Prefer Parse once and Expr.Eval on hot paths.
func (s *Store) Evaluate(expr string) bool {
	return Parse(expr).Eval(s)
}

// Snapshot returns a copy of all context keys.
func (s *Store) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
