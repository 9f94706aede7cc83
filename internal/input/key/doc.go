// Package key provides the keybinding model for the input system.
//
// This package defines the fundamental types for shortcut handling:
//
//   - Modifiers: the four modifier flags (Ctrl, Alt, Shift, Meta)
//   - Keybinding: one non-modifier key plus a Modifiers value
//   - Event: a keyboard event as delivered by a key source
//   - Platform: whether Meta means Cmd (Mac) or is folded onto Ctrl
//
// # Shortcut Specifications
//
// Shortcuts are written as "+"-separated tokens. Modifier tokens may appear
// in any order and the last non-modifier token is the key:
//
//	"Cmd+S"          Meta+s
//	"Shift+Cmd+P"    Meta+Shift+p (same as "Cmd+Shift+P")
//	"Ctrl+Alt+Up"    Ctrl+Alt+arrowup
//	"⌘⇧P" is not supported; use "⌘+⇧+P"
//
// # Platform Rules
//
// On Mac, Meta is the Cmd key and must match exactly. Elsewhere a binding
// that asks for Meta is satisfied by Ctrl, so Cmd-authored shortcuts work
// unchanged on Linux and Windows. Format renders a binding with Mac glyphs
// (⌃⌥⇧⌘) or Windows-style words (Ctrl+Alt+Shift+Win).
package key
