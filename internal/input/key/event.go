package key

import (
	"fmt"
	"strings"
	"time"
)

// TargetKind classifies the UI element that has focus when a key is pressed.
type TargetKind uint8

const (
	// TargetNone means no element has focus.
	TargetNone TargetKind = iota

	// TargetEditor is the main text editor surface.
	TargetEditor

	// TargetPanel is a non-editable panel (file tree, git panel, etc.).
	TargetPanel

	// TargetTextInput is a single-line form field.
	TargetTextInput

	// TargetTextArea is a multi-line form field.
	TargetTextArea

	// TargetTerminal is an embedded terminal.
	TargetTerminal
)

// String returns a human-readable name for the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "none"
	case TargetEditor:
		return "editor"
	case TargetPanel:
		return "panel"
	case TargetTextInput:
		return "input"
	case TargetTextArea:
		return "textarea"
	case TargetTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("TargetKind(%d)", k)
	}
}

// Target describes the focused element an event is delivered to.
type Target struct {
	Kind TargetKind

	// ID identifies the element, e.g. "search.query" or "editor.main".
	ID string

	// ContentEditable marks elements that accept free text even though
	// their kind is not a form field.
	ContentEditable bool
}

// IsTextEntry returns true for text inputs, text areas and content-editable
// targets, where plain keystrokes are meant as typing.
func (t Target) IsTextEntry() bool {
	return t.Kind == TargetTextInput || t.Kind == TargetTextArea || t.ContentEditable
}

// Event is a single key press as seen by key listeners.
//
// Key uses DOM-style names: a printable character ("s", "S", "@"), " " for
// the space bar, or a named key such as "Enter", "Escape", "ArrowUp".
// Listeners suppress the default action with PreventDefault and stop
// delivery to later listeners with StopPropagation.
type Event struct {
	Key string

	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	// Target is the element that had focus.
	Target Target

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates an event for key with the given modifiers and the
// current timestamp.
func NewEvent(key string, mods Modifiers) *Event {
	return &Event{
		Key:       key,
		Ctrl:      mods.Ctrl,
		Alt:       mods.Alt,
		Shift:     mods.Shift,
		Meta:      mods.Meta,
		Timestamp: time.Now(),
	}
}

// Modifiers returns the event's modifier flags.
func (e *Event) Modifiers() Modifiers {
	return Modifiers{Ctrl: e.Ctrl, Alt: e.Alt, Shift: e.Shift, Meta: e.Meta}
}

// PreventDefault suppresses the default action for this event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops delivery to listeners after the current one.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// String returns a representation like "Ctrl+Shift+P".
func (e *Event) String() string {
	name := e.Key
	if name == " " {
		name = "Space"
	}
	mods := e.Modifiers().String()
	if mods == "" {
		return name
	}
	return mods + "+" + name
}

// NormalizedKey returns the event key lower-cased for comparison with a
// Keybinding's key.
func (e *Event) NormalizedKey() string {
	return strings.ToLower(e.Key)
}
