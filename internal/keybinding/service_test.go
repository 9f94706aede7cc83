package keybinding

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ferrum-editor/ferrum/internal/input"
	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

func newTestService(t *testing.T, p key.Platform) *Service {
	t.Helper()
	s := New(DefaultConfig().WithPlatform(p).WithMetrics(), zap.NewNop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func counter(n *atomic.Int32) Handler {
	return func(context.Context) error {
		n.Add(1)
		return nil
	}
}

func TestFileSaveEndToEndOnMac(t *testing.T) {
	s := newTestService(t, key.PlatformMac)

	var calls atomic.Int32
	s.RegisterHandler("file.save", counter(&calls))
	require.NoError(t, s.RegisterKeybinding("file.save", "Cmd+S", ""))

	ev := &key.Event{Key: "s", Meta: true}
	assert.True(t, s.HandleKeyboardEvent(ev))
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "s", Meta: true}))
	assert.Equal(t, int32(2), calls.Load())

	label, ok := s.ShortcutDisplay("file.save")
	require.True(t, ok)
	assert.Equal(t, "⌘S", label)
}

func TestCmdBindingOnOtherPlatform(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var calls atomic.Int32
	s.RegisterHandler("file.save", counter(&calls))
	require.NoError(t, s.RegisterKeybinding("file.save", "Cmd+S", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "s", Ctrl: true}))
	assert.False(t, s.HandleKeyboardEvent(&key.Event{Key: "s", Meta: true}))
	assert.Equal(t, int32(1), calls.Load())

	label, ok := s.ShortcutDisplay("file.save")
	require.True(t, ok)
	assert.Contains(t, label, "S")
}

func TestCmdBindingOnMacIgnoresCtrl(t *testing.T) {
	s := newTestService(t, key.PlatformMac)

	var calls atomic.Int32
	s.RegisterHandler("file.save", counter(&calls))
	require.NoError(t, s.RegisterKeybinding("file.save", "Cmd+S", ""))

	ev := &key.Event{Key: "s", Ctrl: true}
	assert.False(t, s.HandleKeyboardEvent(ev))
	assert.False(t, ev.DefaultPrevented())
	assert.False(t, ev.PropagationStopped())
	assert.Equal(t, int32(0), calls.Load())
}

func TestFirstRegisteredWins(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var first, second atomic.Int32
	s.RegisterHandler("first", counter(&first))
	s.RegisterHandler("second", counter(&second))
	require.NoError(t, s.RegisterKeybinding("first", "Ctrl+K", ""))
	require.NoError(t, s.RegisterKeybinding("second", "Ctrl+K", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "k", Ctrl: true}))
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(0), second.Load())
}

func TestInactiveOrUnhandledBindingFallsThrough(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var gated, fallback atomic.Int32
	s.RegisterHandler("gated", counter(&gated))
	s.RegisterHandler("fallback", counter(&fallback))

	require.NoError(t, s.RegisterKeybinding("unhandled", "Ctrl+K", ""))
	require.NoError(t, s.RegisterKeybinding("gated", "Ctrl+K", "editorFocus && !inputFocus"))
	require.NoError(t, s.RegisterKeybinding("fallback", "Ctrl+K", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "k", Ctrl: true}))
	assert.Equal(t, int32(0), gated.Load())
	assert.Equal(t, int32(1), fallback.Load())

	s.SetContextKey("editorFocus", true)
	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "k", Ctrl: true}))
	assert.Equal(t, int32(1), gated.Load())

	s.SetContextKey("inputFocus", true)
	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "k", Ctrl: true}))
	assert.Equal(t, int32(2), fallback.Load())
}

func TestNoMatchLeavesEventUntouched(t *testing.T) {
	s := newTestService(t, key.PlatformOther)
	s.RegisterHandler("file.save", counter(new(atomic.Int32)))
	require.NoError(t, s.RegisterKeybinding("file.save", "Ctrl+S", ""))

	ev := &key.Event{Key: "a", Ctrl: true}
	assert.False(t, s.HandleKeyboardEvent(ev))
	assert.False(t, ev.DefaultPrevented())
	assert.False(t, s.HandleKeyboardEvent(nil))

	assert.Equal(t, uint64(1), s.Metrics().TotalUnmatched())
}

func TestInvalidShortcutWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(DefaultConfig(), zap.New(core))
	defer s.Close()

	err := s.RegisterKeybinding("broken", "Cmd+Shift", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, key.ErrNoKey)
	assert.Equal(t, 0, s.Keymap().Len())

	entries := logs.FilterMessage("invalid keybinding, skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].ContextMap()["command"])
}

func TestDuplicateHandlerOverwrites(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var old, replacement atomic.Int32
	s.RegisterHandler("cmd", counter(&old))
	s.RegisterHandler("cmd", counter(&replacement))
	require.NoError(t, s.RegisterKeybinding("cmd", "F2", ""))

	s.HandleKeyboardEvent(&key.Event{Key: "F2"})
	assert.Equal(t, int32(0), old.Load())
	assert.Equal(t, int32(1), replacement.Load())
}

func TestRemoveKeybinding(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var calls atomic.Int32
	s.RegisterHandler("cmd", counter(&calls))
	require.NoError(t, s.RegisterKeybinding("cmd", "F2", ""))
	require.NoError(t, s.RegisterKeybinding("cmd", "F3", ""))

	assert.Equal(t, 2, s.RemoveKeybinding("cmd"))
	assert.False(t, s.HandleKeyboardEvent(&key.Event{Key: "F2"}))

	_, ok := s.ShortcutDisplay("cmd")
	assert.False(t, ok)

	require.NoError(t, s.Execute(context.Background(), "cmd"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteBypassesWhen(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var calls atomic.Int32
	s.RegisterHandler("gated", counter(&calls))
	require.NoError(t, s.RegisterKeybinding("gated", "F5", "neverSet"))

	assert.False(t, s.HandleKeyboardEvent(&key.Event{Key: "F5"}))
	require.NoError(t, s.Execute(context.Background(), "gated"))
	assert.Equal(t, int32(1), calls.Load())

	err := s.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestShortcutDisplayUnbound(t *testing.T) {
	s := newTestService(t, key.PlatformMac)
	s.RegisterHandler("unbound", counter(new(atomic.Int32)))

	label, ok := s.ShortcutDisplay("unbound")
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestShortcutDisplayUsesFirstBinding(t *testing.T) {
	s := newTestService(t, key.PlatformOther)
	require.NoError(t, s.RegisterKeybinding("palette.open", "Ctrl+Shift+P", ""))
	require.NoError(t, s.RegisterKeybinding("palette.open", "F1", ""))

	label, ok := s.ShortcutDisplay("palette.open")
	require.True(t, ok)
	assert.Equal(t, "Ctrl+Shift+P", label)
}

func TestHandlerErrorIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := New(DefaultConfig().WithPlatform(key.PlatformOther).WithMetrics(), zap.New(core))
	defer s.Close()

	boom := errors.New("disk full")
	s.RegisterHandler("file.save", func(context.Context) error { return boom })
	require.NoError(t, s.RegisterKeybinding("file.save", "Ctrl+S", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "s", Ctrl: true}))
	assert.Equal(t, 1, logs.FilterMessage("command failed").Len())
	assert.Equal(t, uint64(1), s.Metrics().TotalErrors())

	assert.ErrorIs(t, s.Execute(context.Background(), "file.save"), boom)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	s.RegisterHandler("explode", func(context.Context) error { panic("kaboom") })
	require.NoError(t, s.RegisterKeybinding("explode", "Ctrl+E", ""))

	assert.NotPanics(t, func() {
		assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "e", Ctrl: true}))
	})
	assert.Equal(t, uint64(1), s.Metrics().TotalPanics())

	err := s.Execute(context.Background(), "explode")
	assert.ErrorIs(t, err, ErrHandlerPanic)
}

func TestAsyncHandlerIsNotAwaited(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	release := make(chan struct{})
	var done atomic.Int32
	s.RegisterAsyncHandler("slow", func(ctx context.Context) error {
		<-release
		done.Add(1)
		return nil
	})
	require.NoError(t, s.RegisterKeybinding("slow", "Ctrl+L", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "l", Ctrl: true}))
	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "l", Ctrl: true}))
	assert.Equal(t, int32(0), done.Load())

	close(release)
	require.NoError(t, s.Wait())
	assert.Equal(t, int32(2), done.Load())
}

func TestAsyncHandlerErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := New(DefaultConfig().WithPlatform(key.PlatformOther), zap.New(core))

	boom := errors.New("network down")
	s.RegisterAsyncHandler("ai.complete", func(context.Context) error { return boom })
	require.NoError(t, s.RegisterKeybinding("ai.complete", "Ctrl+Space", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: " ", Ctrl: true}))
	assert.ErrorIs(t, s.Wait(), boom)
	assert.Equal(t, 1, logs.FilterMessage("async command failed").Len())

	_ = s.Close()
	assert.ErrorIs(t, s.Execute(context.Background(), "ai.complete"), ErrClosed)
}

func TestAsyncLimitDoesNotBlockDispatch(t *testing.T) {
	s := New(DefaultConfig().WithPlatform(key.PlatformOther).WithAsyncLimit(1), nil)
	defer s.Close()

	release := make(chan struct{})
	var running, maxRunning atomic.Int32
	s.RegisterAsyncHandler("job", func(context.Context) error {
		n := running.Add(1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return nil
	})
	require.NoError(t, s.RegisterKeybinding("job", "F9", ""))

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			s.HandleKeyboardEvent(&key.Event{Key: "F9"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on async limit")
	}

	close(release)
	require.NoError(t, s.Wait())
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestReentrantRegistrationDuringDispatch(t *testing.T) {
	s := newTestService(t, key.PlatformOther)

	var late atomic.Int32
	s.RegisterHandler("late", counter(&late))
	s.RegisterHandler("installer", func(context.Context) error {
		s.RemoveKeybinding("installer")
		return s.RegisterKeybinding("late", "Ctrl+I", "")
	})
	require.NoError(t, s.RegisterKeybinding("installer", "Ctrl+I", ""))

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "i", Ctrl: true}))
	assert.Equal(t, int32(0), late.Load())

	assert.True(t, s.HandleKeyboardEvent(&key.Event{Key: "i", Ctrl: true}))
	assert.Equal(t, int32(1), late.Load())
}

func TestIndependentInstances(t *testing.T) {
	a := newTestService(t, key.PlatformOther)
	b := newTestService(t, key.PlatformOther)

	a.RegisterHandler("cmd", counter(new(atomic.Int32)))
	require.NoError(t, a.RegisterKeybinding("cmd", "F4", ""))
	a.SetContextKey("editorFocus", true)

	assert.False(t, b.HasHandler("cmd"))
	assert.Equal(t, 0, b.Keymap().Len())
	assert.False(t, b.ContextKey("editorFocus"))
	assert.False(t, b.HandleKeyboardEvent(&key.Event{Key: "F4"}))
}

func TestSetupUpdatesInputFocus(t *testing.T) {
	s := newTestService(t, key.PlatformOther)
	src := input.NewListeners()

	var editorWide, bubbled atomic.Int32
	s.RegisterHandler("editor.selectAll", counter(&editorWide))
	require.NoError(t, s.RegisterKeybinding("editor.selectAll", "Ctrl+A", "editorFocus && !inputFocus"))
	s.SetContextKey(condition.EditorFocus, true)

	dispose := s.Setup(src)
	src.AddKeyListener(func(*key.Event) { bubbled.Add(1) }, false)

	typing := &key.Event{Key: "a", Ctrl: true, Target: key.Target{Kind: key.TargetTextInput}}
	assert.True(t, src.Dispatch(typing), "default action runs while typing in a field")
	assert.True(t, s.ContextKey(condition.InputFocus))
	assert.Equal(t, int32(0), editorWide.Load())
	assert.Equal(t, int32(1), bubbled.Load())

	editing := &key.Event{Key: "a", Ctrl: true, Target: key.Target{Kind: key.TargetEditor}}
	assert.False(t, src.Dispatch(editing))
	assert.False(t, s.ContextKey(condition.InputFocus))
	assert.Equal(t, int32(1), editorWide.Load())
	assert.Equal(t, int32(1), bubbled.Load())

	dispose()
	dispose()
	assert.True(t, src.Dispatch(&key.Event{Key: "a", Ctrl: true, Target: key.Target{Kind: key.TargetEditor}}))
	assert.Equal(t, int32(1), editorWide.Load())
}

func TestMetricsTopCommands(t *testing.T) {
	s := newTestService(t, key.PlatformOther)
	s.RegisterHandler("a", counter(new(atomic.Int32)))
	s.RegisterHandler("b", counter(new(atomic.Int32)))
	require.NoError(t, s.RegisterKeybinding("a", "F1", ""))
	require.NoError(t, s.RegisterKeybinding("b", "F2", ""))

	for i := 0; i < 3; i++ {
		s.HandleKeyboardEvent(&key.Event{Key: "F2"})
	}
	s.HandleKeyboardEvent(&key.Event{Key: "F1"})

	top := s.Metrics().TopCommands(1)
	require.Len(t, top, 1)
	assert.Equal(t, "b", top[0].CommandID)
	assert.Equal(t, uint64(3), top[0].InvokeCount)
	assert.Equal(t, uint64(4), s.Metrics().TotalMatched())
	assert.Equal(t, uint64(1), s.Metrics().Command("a").InvokeCount)

	s.Metrics().Reset()
	assert.Equal(t, uint64(0), s.Metrics().TotalEvents())
}
