package keybinding

import "errors"

// Keybinding service errors.
var (
	// ErrNoHandler indicates no handler is registered for a command.
	ErrNoHandler = errors.New("keybinding: no handler for command")

	// ErrHandlerPanic indicates a command handler panicked.
	ErrHandlerPanic = errors.New("keybinding: handler panic")

	// ErrClosed indicates the service has been closed.
	ErrClosed = errors.New("keybinding: service closed")
)
