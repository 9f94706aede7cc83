package input

import (
	"slices"
	"sync"

	"github.com/ferrum-editor/ferrum/internal/input/key"
)

// Phase selects when a listener sees an event.
type Phase uint8

const (
	// PhaseCapture listeners run before any bubble listener.
	PhaseCapture Phase = iota

	// PhaseBubble listeners run after capture listeners, in registration order.
	PhaseBubble
)

// ListenerFunc receives a key event.
type ListenerFunc func(ev *key.Event)

// ListenerID uniquely identifies a registered listener.
type ListenerID uint64

type listenerRegistration struct {
	id    ListenerID
	phase Phase
	fn    ListenerFunc
}

// Listeners is an ordered set of key listeners with capture and bubble
// phases. It is the building block for key event sources.
type Listeners struct {
	mu        sync.RWMutex
	listeners []listenerRegistration
	nextID    ListenerID
}

// NewListeners creates an empty listener set.
func NewListeners() *Listeners {
	return &Listeners{}
}

// AddKeyListener registers fn in the capture phase when capture is true,
// otherwise in the bubble phase. The returned function removes it and is
// safe to call more than once.
func (l *Listeners) AddKeyListener(fn ListenerFunc, capture bool) (remove func()) {
	phase := PhaseBubble
	if capture {
		phase = PhaseCapture
	}
	id := l.Add(fn, phase)
	return func() { l.Remove(id) }
}

// Add registers fn for the given phase.
func (l *Listeners) Add(fn ListenerFunc, phase Phase) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.listeners = append(l.listeners, listenerRegistration{
		id:    l.nextID,
		phase: phase,
		fn:    fn,
	})
	return l.nextID
}

// Remove unregisters a listener. It returns false if id is unknown.
func (l *Listeners) Remove(id ListenerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.listeners, func(r listenerRegistration) bool { return r.id == id })
	if i < 0 {
		return false
	}
	l.listeners = slices.Delete(slices.Clone(l.listeners), i, i+1)
	return true
}

// Count returns the number of registered listeners.
func (l *Listeners) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.listeners)
}

// Dispatch delivers ev to capture listeners, then bubble listeners, stopping
// as soon as a listener calls ev.StopPropagation. Listeners added or removed
// during delivery take effect for the next event. It returns true if the
// default action should still run.
func (l *Listeners) Dispatch(ev *key.Event) bool {
	l.mu.RLock()
	snapshot := l.listeners
	l.mu.RUnlock()

	for _, phase := range []Phase{PhaseCapture, PhaseBubble} {
		for _, r := range snapshot {
			if r.phase != phase {
				continue
			}
			r.fn(ev)
			if ev.PropagationStopped() {
				return !ev.DefaultPrevented()
			}
		}
	}
	return !ev.DefaultPrevented()
}
