package keybinding

import (
	"sync"

	"github.com/ferrum-editor/ferrum/internal/input"
	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// Source delivers key events to listeners.
// input.Listeners and terminal.Source implement it.
type Source interface {
	AddKeyListener(fn input.ListenerFunc, capture bool) (remove func())
}

// Setup installs the service as a capture-phase key listener on src and
// returns a function that removes it. Before each dispatch the listener sets
// the inputFocus context key from the event target, so bindings gated by
// "!inputFocus" stay inactive while the user types in a form field.
// The returned function is safe to call more than once.
func (s *Service) Setup(src Source) (dispose func()) {
	remove := src.AddKeyListener(s.onKey, true)

	var once sync.Once
	return func() {
		once.Do(remove)
	}
}

func (s *Service) onKey(ev *key.Event) {
	s.SetContextKey(condition.InputFocus, ev.Target.IsTextEntry())
	s.HandleKeyboardEvent(ev)
}
