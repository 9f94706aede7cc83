package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrum-editor/ferrum/internal/input/key"
)

func newSimSource(t *testing.T) (*Source, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	return NewSource(screen, nil), screen
}

func TestHandleEventPhases(t *testing.T) {
	src, _ := newSimSource(t)

	var order []string
	src.AddKeyListener(func(*key.Event) { order = append(order, "bubble") }, false)
	src.AddKeyListener(func(ev *key.Event) {
		order = append(order, "capture")
		if ev.Key == "p" && ev.Ctrl {
			ev.PreventDefault()
			ev.StopPropagation()
		}
	}, true)

	var typed []string
	src.SetFallback(func(ev *key.Event) { typed = append(typed, ev.Key) })

	src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	assert.Equal(t, []string{"capture", "bubble"}, order)
	assert.Equal(t, []string{"a"}, typed)

	order = nil
	src.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl))
	assert.Equal(t, []string{"capture"}, order)
	assert.Equal(t, []string{"a"}, typed)
}

func TestHandleEventTarget(t *testing.T) {
	src, _ := newSimSource(t)

	target := key.Target{Kind: key.TargetTextInput, ID: "search.query"}
	src.SetFocus(func() key.Target { return target })

	var got key.Target
	src.AddKeyListener(func(ev *key.Event) { got = ev.Target }, true)
	src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	assert.Equal(t, target, got)
}

func TestHandleEventNonKey(t *testing.T) {
	src, _ := newSimSource(t)

	var listened int
	src.AddKeyListener(func(*key.Event) { listened++ }, true)

	var other []tcell.Event
	src.SetEventHandler(func(ev tcell.Event) { other = append(other, ev) })

	src.HandleEvent(tcell.NewEventResize(80, 24))
	assert.Len(t, other, 1)
	assert.Equal(t, 0, listened)
}

func TestRun(t *testing.T) {
	src, screen := newSimSource(t)

	got := make(chan *key.Event, 1)
	src.AddKeyListener(func(ev *key.Event) { got <- ev }, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModAlt)

	select {
	case ev := <-got:
		assert.Equal(t, "q", ev.Key)
		assert.True(t, ev.Alt)
	case <-time.After(2 * time.Second):
		t.Fatal("key event not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
