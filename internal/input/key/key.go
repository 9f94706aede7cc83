package key

import "strings"

// Canonical names for keys that have synonyms or special rendering.
// Character keys are stored as their lower-cased character.
const (
	KeyEscape     = "escape"
	KeyEnter      = "enter"
	KeyTab        = "tab"
	KeyBackspace  = "backspace"
	KeyDelete     = "delete"
	KeyInsert     = "insert"
	KeyHome       = "home"
	KeyEnd        = "end"
	KeyPageUp     = "pageup"
	KeyPageDown   = "pagedown"
	KeyArrowUp    = "arrowup"
	KeyArrowDown  = "arrowdown"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
	KeySpace      = " "
)

// keySynonyms maps alternate key names (lowercase) to canonical names.
var keySynonyms = map[string]string{
	"esc":    KeyEscape,
	"del":    KeyDelete,
	"ins":    KeyInsert,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
	"return": KeyEnter,
	"space":  KeySpace,
	"up":     KeyArrowUp,
	"down":   KeyArrowDown,
	"left":   KeyArrowLeft,
	"right":  KeyArrowRight,
}

// NormalizeKey lower-cases a key name and resolves synonyms.
func NormalizeKey(name string) string {
	lower := strings.ToLower(name)
	if canonical, ok := keySynonyms[lower]; ok {
		return canonical
	}
	return lower
}

// Keybinding is a normalized key plus the modifiers that must accompany it.
// Key is never a modifier name.
type Keybinding struct {
	// Key is the lower-case canonical key name ("s", "escape", "arrowup", " ").
	Key string

	Modifiers
}

// String returns a platform-neutral representation like "Ctrl+Shift+p".
func (kb Keybinding) String() string {
	name := kb.Key
	if name == KeySpace {
		name = "space"
	}
	if kb.Modifiers.IsEmpty() {
		return name
	}
	return kb.Modifiers.String() + "+" + name
}

// Equals returns true if both bindings denote the same key combination.
func (kb Keybinding) Equals(other Keybinding) bool {
	return kb == other
}

// IsArrowKey returns true if the binding's key is an arrow key.
func (kb Keybinding) IsArrowKey() bool {
	switch kb.Key {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		return true
	}
	return false
}
