package key

import "strings"

// Mac modifier glyphs, rendered in the fixed order ctrl, alt, shift, meta.
const (
	glyphCtrl  = "⌃"
	glyphAlt   = "⌥"
	glyphShift = "⇧"
	glyphCmd   = "⌘"
)

// specialLabel holds the Mac and non-Mac rendering of a key.
type specialLabel struct {
	mac   string
	other string
}

var specialLabels = map[string]specialLabel{
	KeySpace:      {"Space", "Space"},
	KeyEscape:     {"Esc", "Esc"},
	KeyArrowUp:    {"↑", "↑"},
	KeyArrowDown:  {"↓", "↓"},
	KeyArrowLeft:  {"←", "←"},
	KeyArrowRight: {"→", "→"},
	KeyEnter:      {"↵", "Enter"},
	KeyBackspace:  {"⌫", "Backspace"},
	KeyDelete:     {"⌦", "Delete"},
	KeyTab:        {"⇥", "Tab"},
}

// Format renders a keybinding as a label for menus and the command palette.
//
// On Mac the modifiers become concatenated glyphs ("⌃⌥⇧⌘") followed by the
// key glyph, e.g. "⇧⌘P". Elsewhere they become words joined with "+",
// e.g. "Ctrl+Shift+P". Format is not an inverse of ParseShortcut.
func Format(kb Keybinding, p Platform) string {
	label := KeyLabel(kb.Key, p)

	if p.IsMac() {
		var b strings.Builder
		if kb.Ctrl {
			b.WriteString(glyphCtrl)
		}
		if kb.Alt {
			b.WriteString(glyphAlt)
		}
		if kb.Shift {
			b.WriteString(glyphShift)
		}
		if kb.Meta {
			b.WriteString(glyphCmd)
		}
		b.WriteString(label)
		return b.String()
	}

	parts := make([]string, 0, 5)
	if kb.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if kb.Alt {
		parts = append(parts, "Alt")
	}
	if kb.Shift {
		parts = append(parts, "Shift")
	}
	if kb.Meta {
		parts = append(parts, "Win")
	}
	parts = append(parts, label)
	return strings.Join(parts, "+")
}

// KeyLabel renders a single canonical key name without modifiers.
func KeyLabel(name string, p Platform) string {
	if l, ok := specialLabels[name]; ok {
		if p.IsMac() {
			return l.mac
		}
		return l.other
	}
	return strings.ToUpper(name)
}
