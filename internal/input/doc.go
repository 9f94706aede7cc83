// Package input routes keyboard events from a key source to listeners.
//
// Subpackages hold the pieces of the keybinding pipeline:
//
//   - key: shortcut parsing, display formatting and the Event type
//   - condition: context keys and when-expressions
//   - keymap: the ordered keybinding registry
//
// Listeners implements the capture/bubble delivery used by key sources such
// as the terminal. A capture listener that handles an event calls
// PreventDefault and StopPropagation so later listeners and the source's
// default action never see it.
package input
