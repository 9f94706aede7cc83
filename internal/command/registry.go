package command

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/keybinding"
)

// Binder installs handlers and keybindings. *keybinding.Service implements it.
type Binder interface {
	RegisterHandler(commandID string, h keybinding.Handler)
	RegisterAsyncHandler(commandID string, h keybinding.Handler)
	UnregisterHandler(commandID string)
	RegisterKeybinding(commandID, shortcut, when string) error
	RemoveKeybinding(commandID string) int
	ShortcutDisplay(commandID string) (string, bool)
	Execute(ctx context.Context, commandID string) error
}

// Registry is the ordered catalog of commands.
type Registry struct {
	mu       sync.RWMutex
	commands []*Command
	index    map[string]int

	binder  Binder
	history *History
	logger  *zap.Logger
}

// NewRegistry creates a registry that binds commands through binder.
// A nil logger disables logging.
func NewRegistry(binder Binder, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		index:   make(map[string]int),
		binder:  binder,
		history: NewHistory(100),
		logger:  logger.Named("command"),
	}
}

// Register adds cmd, installs its handler and, if it declares a shortcut,
// its keybinding. An invalid shortcut is logged by the binder and leaves the
// command registered without a keybinding.
//
// Registering an existing ID replaces the command in place, together with
// its handler and keybindings.
func (r *Registry) Register(cmd *Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	i, replaced := r.index[cmd.ID]
	if replaced {
		r.commands[i] = cmd
	} else {
		r.index[cmd.ID] = len(r.commands)
		r.commands = append(r.commands, cmd)
	}
	r.mu.Unlock()

	if replaced {
		r.binder.RemoveKeybinding(cmd.ID)
	}
	if cmd.Async {
		r.binder.RegisterAsyncHandler(cmd.ID, cmd.Handler)
	} else {
		r.binder.RegisterHandler(cmd.ID, cmd.Handler)
	}

	bound := false
	if cmd.Shortcut != "" {
		bound = r.binder.RegisterKeybinding(cmd.ID, cmd.Shortcut, cmd.When) == nil
	}

	r.logger.Debug("command registered",
		zap.String("command", cmd.ID),
		zap.Bool("bound", bound),
		zap.Bool("replaced", replaced),
	)
	return nil
}

// RegisterAll registers each command, stopping at the first error.
func (r *Registry) RegisterAll(cmds []*Command) error {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes a command with its handler and keybindings.
// It returns false if id is unknown.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	i, ok := r.index[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	r.commands = slices.Delete(r.commands, i, i+1)
	delete(r.index, id)
	for j := i; j < len(r.commands); j++ {
		r.index[r.commands[j].ID] = j
	}
	r.mu.Unlock()

	r.binder.RemoveKeybinding(id)
	r.binder.UnregisterHandler(id)
	return true
}

// Get returns the command with the given id.
func (r *Registry) Get(id string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.commands[i], true
}

// All returns every command in registration order.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.commands)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Execute runs a command directly, bypassing keybinding matching and
// when-clauses. Successful runs are recorded in the history.
func (r *Registry) Execute(ctx context.Context, id string) error {
	err := r.binder.Execute(ctx, id)
	if err != nil {
		return err
	}
	if _, ok := r.Get(id); ok {
		r.history.Add(id)
	}
	return nil
}

// ShortcutDisplay returns the platform display string of the command's first
// keybinding, or false if it has none.
func (r *Registry) ShortcutDisplay(id string) (string, bool) {
	return r.binder.ShortcutDisplay(id)
}

// History returns the execution history.
func (r *Registry) History() *History {
	return r.history
}

// Category is a named group of commands.
type Category struct {
	Name     string
	Commands []*Command
}

// ByCategory groups commands by category. Categories appear in the order
// their first command was registered; commands keep registration order.
func (r *Registry) ByCategory() []Category {
	groups := make(map[string][]*Command)
	order := make([]string, 0)

	for _, cmd := range r.All() {
		name := cmd.DisplayCategory()
		if _, exists := groups[name]; !exists {
			order = append(order, name)
		}
		groups[name] = append(groups[name], cmd)
	}

	result := make([]Category, 0, len(order))
	for _, name := range order {
		result = append(result, Category{Name: name, Commands: groups[name]})
	}
	return result
}
