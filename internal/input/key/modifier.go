package key

import "strings"

// Modifiers holds the state of the four modifier keys.
// Meta is the platform's primary modifier: Cmd on Mac, the Windows key elsewhere.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// IsEmpty returns true if no modifiers are set.
func (m Modifiers) IsEmpty() bool {
	return !m.Ctrl && !m.Alt && !m.Shift && !m.Meta
}

// String returns a representation like "Ctrl+Alt" in the fixed
// order ctrl, alt, shift, meta.
func (m Modifiers) String() string {
	var parts []string
	if m.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if m.Alt {
		parts = append(parts, "Alt")
	}
	if m.Shift {
		parts = append(parts, "Shift")
	}
	if m.Meta {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// modifier identifies a single modifier flag.
type modifier uint8

const (
	modNone modifier = iota
	modCtrl
	modAlt
	modShift
	modMeta
)

// modifierNameMap maps modifier synonyms (lowercase) to a modifier flag.
var modifierNameMap = map[string]modifier{
	"cmd":     modMeta,
	"command": modMeta,
	"meta":    modMeta,
	"⌘":       modMeta,
	"ctrl":    modCtrl,
	"control": modCtrl,
	"⌃":       modCtrl,
	"alt":     modAlt,
	"option":  modAlt,
	"opt":     modAlt,
	"⌥":       modAlt,
	"shift":   modShift,
	"⇧":       modShift,
}

// IsModifierName returns true if name (case-insensitive) is a modifier synonym.
func IsModifierName(name string) bool {
	_, ok := modifierNameMap[strings.ToLower(name)]
	return ok
}

// with returns m with the given flag set.
func (m Modifiers) with(mod modifier) Modifiers {
	switch mod {
	case modCtrl:
		m.Ctrl = true
	case modAlt:
		m.Alt = true
	case modShift:
		m.Shift = true
	case modMeta:
		m.Meta = true
	}
	return m
}
