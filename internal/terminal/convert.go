package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// namedKeys maps tcell special keys to DOM-style key names. It is a list
// rather than a map because some tcell key constants alias each other.
var namedKeys = []struct {
	key  tcell.Key
	name string
}{
	{tcell.KeyEscape, "Escape"},
	{tcell.KeyEnter, "Enter"},
	{tcell.KeyTab, "Tab"},
	{tcell.KeyBacktab, "Tab"},
	{tcell.KeyBackspace, "Backspace"},
	{tcell.KeyBackspace2, "Backspace"},
	{tcell.KeyDelete, "Delete"},
	{tcell.KeyInsert, "Insert"},
	{tcell.KeyHome, "Home"},
	{tcell.KeyEnd, "End"},
	{tcell.KeyPgUp, "PageUp"},
	{tcell.KeyPgDn, "PageDown"},
	{tcell.KeyUp, "ArrowUp"},
	{tcell.KeyDown, "ArrowDown"},
	{tcell.KeyLeft, "ArrowLeft"},
	{tcell.KeyRight, "ArrowRight"},
	{tcell.KeyF1, "F1"},
	{tcell.KeyF2, "F2"},
	{tcell.KeyF3, "F3"},
	{tcell.KeyF4, "F4"},
	{tcell.KeyF5, "F5"},
	{tcell.KeyF6, "F6"},
	{tcell.KeyF7, "F7"},
	{tcell.KeyF8, "F8"},
	{tcell.KeyF9, "F9"},
	{tcell.KeyF10, "F10"},
	{tcell.KeyF11, "F11"},
	{tcell.KeyF12, "F12"},
}

// ConvertKey converts a tcell key event into a key.Event. It returns nil
// for keys that have no DOM-style equivalent.
//
// Printable runes keep their case; an upper-case letter also sets Shift.
// Control characters reported as KeyCtrlA..KeyCtrlZ become the letter with
// Ctrl set.
func ConvertKey(ev *tcell.EventKey) *key.Event {
	mods := convertMod(ev.Modifiers())

	name, ok := keyName(ev, &mods)
	if !ok {
		return nil
	}

	out := key.NewEvent(name, mods)
	out.Timestamp = ev.When()
	return out
}

func keyName(ev *tcell.EventKey, mods *key.Modifiers) (string, bool) {
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods.Shift = true
		}
		return string(r), true
	}

	for _, nk := range namedKeys {
		if nk.key == k {
			if k == tcell.KeyBacktab {
				mods.Shift = true
			}
			return nk.name, true
		}
	}

	switch {
	case k == tcell.KeyCtrlSpace:
		mods.Ctrl = true
		return key.KeySpace, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		mods.Ctrl = true
		return string(rune('a' + (k - tcell.KeyCtrlA))), true
	}
	return "", false
}

func convertMod(m tcell.ModMask) key.Modifiers {
	return key.Modifiers{
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
		Shift: m&tcell.ModShift != 0,
		Meta:  m&tcell.ModMeta != 0,
	}
}
