package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// ErrEmptyCommand is returned when registering a binding without a command id.
var ErrEmptyCommand = errors.New("keymap: empty command id")

// Registry is an ordered list of keybindings.
type Registry struct {
	mu       sync.RWMutex
	bindings []RegisteredKeybinding
	nextSeq  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register parses shortcut and appends a binding for commandID.
// when may be empty. On a parse error the registry is left unchanged.
func (r *Registry) Register(commandID, shortcut, when string) (RegisteredKeybinding, error) {
	if commandID == "" {
		return RegisteredKeybinding{}, ErrEmptyCommand
	}

	kb, err := key.ParseShortcut(shortcut)
	if err != nil {
		return RegisteredKeybinding{}, fmt.Errorf("binding %s: %w", commandID, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	b := RegisteredKeybinding{
		ID:         id,
		Seq:        r.nextSeq,
		Keybinding: kb,
		CommandID:  commandID,
		Shortcut:   shortcut,
		When:       condition.Parse(when),
	}
	r.bindings = append(r.bindings, b)
	return b, nil
}

// Remove removes every binding for commandID and returns how many were removed.
func (r *Registry) Remove(commandID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.bindings)
	// Deleting into a fresh slice keeps earlier snapshots intact.
	kept := make([]RegisteredKeybinding, 0, before)
	for _, b := range r.bindings {
		if b.CommandID != commandID {
			kept = append(kept, b)
		}
	}
	r.bindings = kept
	return before - len(kept)
}

// Lookup returns the earliest-registered keybinding for commandID.
func (r *Registry) Lookup(commandID string) (key.Keybinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		if b.CommandID == commandID {
			return b.Keybinding, true
		}
	}
	return key.Keybinding{}, false
}

// Bindings returns all bindings for commandID in registration order.
func (r *Registry) Bindings(commandID string) []RegisteredKeybinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []RegisteredKeybinding
	for _, b := range r.bindings {
		if b.CommandID == commandID {
			result = append(result, b)
		}
	}
	return result
}

// Snapshot returns a copy of all bindings in registration order.
// Later registrations and removals do not affect the returned slice.
func (r *Registry) Snapshot() []RegisteredKeybinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.bindings)
}

// Conflicts returns every binding bound to kb, in registration order.
// The first entry is the one dispatch will pick when its when-clause holds.
func (r *Registry) Conflicts(kb key.Keybinding) []RegisteredKeybinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []RegisteredKeybinding
	for _, b := range r.bindings {
		if b.Keybinding.Equals(kb) {
			result = append(result, b)
		}
	}
	return result
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
