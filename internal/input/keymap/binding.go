package keymap

import (
	"github.com/google/uuid"

	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// RegisteredKeybinding is one entry in the registry.
type RegisteredKeybinding struct {
	// ID is a time-ordered identity assigned at registration.
	ID uuid.UUID

	// Seq is the registration generation; lower values were registered first.
	Seq uint64

	// Keybinding is the parsed key combination.
	key.Keybinding

	// CommandID is the command this binding invokes.
	CommandID string

	// Shortcut is the original shortcut text.
	Shortcut string

	// When gates the binding; the zero Expr always holds.
	When condition.Expr
}

// Active reports whether the binding's when-clause holds against ctx.
func (b RegisteredKeybinding) Active(ctx condition.Lookup) bool {
	return b.When.Eval(ctx)
}

// Matches reports whether ev presses this binding's key combination on p.
func (b RegisteredKeybinding) Matches(ev *key.Event, p key.Platform) bool {
	return key.Matches(b.Keybinding, ev, p)
}
