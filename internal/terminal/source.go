package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/input"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// FocusFunc reports the element that currently has keyboard focus.
type FocusFunc func() key.Target

// Source reads events from a tcell screen and dispatches key presses to
// listeners registered with AddKeyListener.
type Source struct {
	*input.Listeners

	screen tcell.Screen
	logger *zap.Logger

	mu       sync.RWMutex
	focus    FocusFunc
	fallback input.ListenerFunc
	onEvent  func(tcell.Event)
}

// NewSource creates a source reading from screen. The screen must already
// be initialized. A nil logger disables logging.
func NewSource(screen tcell.Screen, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		Listeners: input.NewListeners(),
		screen:    screen,
		logger:    logger.Named("terminal"),
	}
}

// SetFocus installs the function consulted for each event's target.
func (s *Source) SetFocus(fn FocusFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = fn
}

// SetFallback installs the default action run for key events no listener
// prevented, typically inserting the typed character.
func (s *Source) SetFallback(fn input.ListenerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = fn
}

// SetEventHandler installs a callback for non-key events such as resizes.
func (s *Source) SetEventHandler(fn func(tcell.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = fn
}

// HandleEvent processes a single tcell event.
func (s *Source) HandleEvent(ev tcell.Event) {
	s.mu.RLock()
	focus, fallback, onEvent := s.focus, s.fallback, s.onEvent
	s.mu.RUnlock()

	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		if onEvent != nil {
			onEvent(ev)
		}
		return
	}

	e := ConvertKey(kev)
	if e == nil {
		s.logger.Debug("unmapped key", zap.String("name", kev.Name()))
		return
	}
	if focus != nil {
		e.Target = focus()
	}

	if s.Dispatch(e) && fallback != nil {
		fallback(e)
	}
}

// Run polls the screen until ctx is cancelled or the screen is finalized.
// Interrupt events posted by other goroutines reach the event handler.
func (s *Source) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.HandleEvent(ev)
	}
}
