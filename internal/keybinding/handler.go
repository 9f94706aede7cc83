package keybinding

import "context"

// Handler runs a command. The context is cancelled when the service closes.
type Handler func(ctx context.Context) error

// handlerEntry is a registered handler and how it runs.
type handlerEntry struct {
	fn    Handler
	async bool
}
