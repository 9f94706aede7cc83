// Package terminal delivers key presses from a tcell screen to key
// listeners.
//
// Source polls a tcell.Screen, converts each *tcell.EventKey into a
// key.Event with DOM-style key names, and runs the registered listeners:
// capture listeners first, then bubble listeners unless one stopped
// propagation, then the fallback handler unless one prevented the default
// action. The focused element is supplied by a FocusFunc so listeners can
// tell typing in a form field from editor commands.
package terminal
