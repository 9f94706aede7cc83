package key

// Matches reports whether ev is a press of kb on platform p.
//
// The key must match case-insensitively. Alt and Shift must match exactly.
// On Mac, Ctrl and Meta (Cmd) must both match exactly. Elsewhere a binding's
// Meta is satisfied by Ctrl: the event's Ctrl must equal kb.Ctrl || kb.Meta,
// and the event's Meta (the Windows key) must be up unless the binding asks
// for Meta.
func Matches(kb Keybinding, ev *Event, p Platform) bool {
	if ev == nil || ev.NormalizedKey() != kb.Key {
		return false
	}
	if ev.Alt != kb.Alt || ev.Shift != kb.Shift {
		return false
	}

	if p.IsMac() {
		return ev.Meta == kb.Meta && ev.Ctrl == kb.Ctrl
	}

	wantCtrl := kb.Ctrl || kb.Meta
	if ev.Ctrl != wantCtrl {
		return false
	}
	if !kb.Meta && ev.Meta {
		return false
	}
	return true
}
