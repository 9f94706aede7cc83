package command

import (
	"slices"
	"sync"
)

// History tracks recently executed commands, most recent first.
type History struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// NewHistory creates a history holding at most maxItems entries.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &History{
		items:    make([]string, 0, maxItems),
		maxItems: maxItems,
	}
}

// Add records an execution, moving id to the front.
func (h *History) Add(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.items, id); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, id)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Recent returns up to limit ids, most recent first. A non-positive limit
// returns all of them.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	return slices.Clone(h.items[:limit])
}

// Position returns the index of id (0 = most recent), or -1.
func (h *History) Position(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.items, id)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = h.items[:0]
}
