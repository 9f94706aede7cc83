package command

import (
	"errors"
	"fmt"

	"github.com/ferrum-editor/ferrum/internal/keybinding"
)

// ErrInvalidCommand is returned when a command cannot be registered.
var ErrInvalidCommand = errors.New("invalid command")

// DefaultCategory is used for commands registered without a category.
const DefaultCategory = "Other"

// Command describes an invocable editor action.
type Command struct {
	// ID is the unique command identifier, e.g. "file.save".
	ID string

	// Title is the human readable name shown in palettes and menus.
	Title string

	// Category groups related commands for display.
	Category string

	// Shortcut is the default key combination, e.g. "Cmd+S". Optional.
	Shortcut string

	// When gates the shortcut, e.g. "editorFocus && !inputFocus". Optional.
	When string

	// Async runs the handler as a fire-and-forget task.
	Async bool

	// Handler performs the command.
	Handler keybinding.Handler
}

// Validate checks that the command can be registered.
func (c *Command) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidCommand)
	}
	if c.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidCommand, c.ID)
	}
	return nil
}

// DisplayTitle returns the title, falling back to the ID.
func (c *Command) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// DisplayCategory returns the category, falling back to DefaultCategory.
func (c *Command) DisplayCategory() string {
	if c.Category != "" {
		return c.Category
	}
	return DefaultCategory
}

// Label returns "Category: Title", the form palettes list commands in.
func (c *Command) Label() string {
	return c.DisplayCategory() + ": " + c.DisplayTitle()
}
