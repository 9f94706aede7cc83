package keybinding

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
	"github.com/ferrum-editor/ferrum/internal/input/keymap"
)

// Service resolves key events into command invocations.
// Independent instances share no state.
type Service struct {
	mu       sync.RWMutex
	handlers map[string]handlerEntry
	closed   bool

	keymap      *keymap.Registry
	contextKeys *condition.Store

	config  Config
	logger  *zap.Logger
	metrics *Metrics
	runner  *runner
}

// New creates a service. A nil logger disables logging.
func New(config Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		handlers:    make(map[string]handlerEntry),
		keymap:      keymap.NewRegistry(),
		contextKeys: condition.NewStore(),
		config:      config,
		logger:      logger.Named("keybinding"),
		runner:      newRunner(config.AsyncLimit),
	}
	if config.EnableMetrics {
		s.metrics = NewMetrics()
	}
	return s
}

// NewWithDefaults creates a service for the running platform without logging.
func NewWithDefaults() *Service {
	return New(DefaultConfig(), nil)
}

// RegisterHandler installs a synchronous handler for commandID, replacing
// any previous handler.
func (s *Service) RegisterHandler(commandID string, h Handler) {
	s.setHandler(commandID, h, false)
}

// RegisterAsyncHandler installs a fire-and-forget handler for commandID,
// replacing any previous handler.
func (s *Service) RegisterAsyncHandler(commandID string, h Handler) {
	s.setHandler(commandID, h, true)
}

func (s *Service) setHandler(commandID string, h Handler, async bool) {
	if h == nil {
		s.logger.Warn("ignoring nil handler", zap.String("command", commandID))
		return
	}

	s.mu.Lock()
	_, replaced := s.handlers[commandID]
	s.handlers[commandID] = handlerEntry{fn: h, async: async}
	s.mu.Unlock()

	if replaced {
		s.logger.Debug("handler replaced", zap.String("command", commandID))
	}
}

// UnregisterHandler removes the handler for commandID. Its keybindings stay
// registered but are skipped by dispatch.
func (s *Service) UnregisterHandler(commandID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, commandID)
}

// HasHandler reports whether commandID has a handler.
func (s *Service) HasHandler(commandID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.handlers[commandID]
	return ok
}

// RegisterKeybinding binds shortcut to commandID, gated by the optional
// when-expression. Repeated calls for the same command add further
// bindings. An invalid shortcut is logged as a warning, leaves the
// registry unchanged and is returned.
func (s *Service) RegisterKeybinding(commandID, shortcut, when string) error {
	b, err := s.keymap.Register(commandID, shortcut, when)
	if err != nil {
		s.logger.Warn("invalid keybinding, skipped",
			zap.String("command", commandID),
			zap.String("shortcut", shortcut),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("keybinding registered",
		zap.String("command", commandID),
		zap.Stringer("binding", b.Keybinding),
		zap.String("when", b.When.String()),
	)
	return nil
}

// RemoveKeybinding removes every binding for commandID and returns the count.
func (s *Service) RemoveKeybinding(commandID string) int {
	return s.keymap.Remove(commandID)
}

// Lookup returns the first registered keybinding for commandID.
func (s *Service) Lookup(commandID string) (key.Keybinding, bool) {
	return s.keymap.Lookup(commandID)
}

// ShortcutDisplay renders the first keybinding for commandID for the
// service's platform. It returns false if the command has no binding.
func (s *Service) ShortcutDisplay(commandID string) (string, bool) {
	kb, ok := s.keymap.Lookup(commandID)
	if !ok {
		return "", false
	}
	return key.Format(kb, s.config.Platform), true
}

// SetContextKey sets a context key used by when-clauses.
func (s *Service) SetContextKey(name string, value bool) {
	s.contextKeys.Set(name, value)
}

// ContextKey returns a context key's value.
func (s *Service) ContextKey(name string) bool {
	return s.contextKeys.Get(name)
}

// HandleKeyboardEvent resolves ev against the registered keybindings.
//
// Bindings are tried in registration order. The first one whose key
// combination matches, whose when-clause holds and whose command has a
// handler consumes the event: its default action is prevented, propagation
// is stopped and the handler is invoked. Handler failures are logged and
// do not change the result. It returns false when nothing matched, leaving
// ev untouched.
func (s *Service) HandleKeyboardEvent(ev *key.Event) bool {
	if ev == nil {
		return false
	}

	for _, b := range s.keymap.Snapshot() {
		if !b.Matches(ev, s.config.Platform) {
			continue
		}
		if !b.Active(s.contextKeys) {
			continue
		}
		entry, ok := s.handler(b.CommandID)
		if !ok {
			continue
		}

		ev.PreventDefault()
		ev.StopPropagation()

		s.logger.Debug("key dispatched",
			zap.Stringer("event", ev),
			zap.String("command", b.CommandID),
		)
		if s.metrics != nil {
			s.metrics.RecordEvent(true)
		}

		if err := s.invoke(b.CommandID, entry); err != nil {
			s.logger.Error("command failed",
				zap.String("command", b.CommandID),
				zap.Error(err),
			)
		}
		return true
	}

	if s.metrics != nil {
		s.metrics.RecordEvent(false)
	}
	return false
}

// Execute runs the handler for commandID directly, without keybinding
// matching or when evaluation. Synchronous handlers return their error;
// async handlers are started and Execute returns nil.
func (s *Service) Execute(ctx context.Context, commandID string) error {
	entry, ok := s.handler(commandID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, commandID)
	}
	if entry.async {
		return s.invoke(commandID, entry)
	}
	if ctx == nil {
		ctx = s.runner.ctx
	}
	return s.call(ctx, commandID, entry.fn)
}

func (s *Service) handler(commandID string) (handlerEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.handlers[commandID]
	return entry, ok
}

// invoke runs entry for commandID, synchronously or as a fire-and-forget task.
func (s *Service) invoke(commandID string, entry handlerEntry) error {
	if !entry.async {
		return s.call(s.runner.ctx, commandID, entry.fn)
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return fmt.Errorf("%w: %s", ErrClosed, commandID)
	}

	s.runner.Go(func(ctx context.Context) error {
		err := s.call(ctx, commandID, entry.fn)
		if err != nil {
			s.logger.Error("async command failed",
				zap.String("command", commandID),
				zap.Error(err),
			)
		}
		return err
	})
	return nil
}

// call runs a handler, converting a panic into ErrHandlerPanic when panic
// recovery is enabled.
func (s *Service) call(ctx context.Context, commandID string, h Handler) (err error) {
	start := time.Now()

	if s.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)

				err = fmt.Errorf("%w: %s: %v", ErrHandlerPanic, commandID, r)
				s.logger.Error("handler panic",
					zap.String("command", commandID),
					zap.Any("panic", r),
					zap.ByteString("stack", stack[:n]),
				)
				if s.metrics != nil {
					s.metrics.RecordPanic(commandID)
				}
			}
		}()
	}

	err = h(ctx)

	if s.metrics != nil {
		s.metrics.RecordInvocation(commandID, time.Since(start), err)
	}
	return err
}

// Wait blocks until all started async handlers have returned. It reports
// the first async handler error since the service was created.
func (s *Service) Wait() error {
	return s.runner.Wait()
}

// Close cancels the handler context and waits for async handlers.
// Async handlers dispatched after Close are not started.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.runner.Close()
}

// Keymap returns the keybinding registry.
func (s *Service) Keymap() *keymap.Registry {
	return s.keymap
}

// Context returns the context store.
func (s *Service) Context() *condition.Store {
	return s.contextKeys
}

// Platform returns the platform used for matching and display.
func (s *Service) Platform() key.Platform {
	return s.config.Platform
}

// Metrics returns the metrics collector (may be nil if disabled).
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.config
}
