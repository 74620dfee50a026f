// Package event is the process-wide publish/subscribe channel between the game
// loop and peripheral listeners.
package event

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Names fired by the game loop.
const (
	LoadStart     = "LOAD_START"
	LoadComplete  = "LOAD_COMPLETE"
	SetupComplete = "SETUP_COMPLETE"
	PreUpdate     = "PRE_UPDATE"
	Update        = "UPDATE"
	PostUpdate    = "POST_UPDATE"
)

// Handle identifies a single subscription.
type Handle string

// Callback receives the payload passed to Fire.
type Callback func(payload any)

type listener struct {
	handle Handle
	fn     Callback
}

// Mediator dispatches events synchronously, in registration order.
type Mediator struct {
	listeners map[string][]listener
	log       *zap.Logger
}

func NewMediator(log *zap.Logger) *Mediator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mediator{
		listeners: make(map[string][]listener),
		log:       log,
	}
}

// On registers fn for event and returns the handle used to unsubscribe it.
func (m *Mediator) On(event string, fn Callback) Handle {
	h := Handle(uuid.NewString())
	if fn == nil {
		m.log.Warn("nil callback ignored", zap.String("event", event))
		return h
	}
	m.listeners[event] = append(m.listeners[event], listener{handle: h, fn: fn})
	return h
}

// Fire invokes every callback registered for event. Callbacks see the list as
// it was when Fire started: subscribing or unsubscribing from inside a callback
// takes effect on the next Fire.
func (m *Mediator) Fire(event string, payload any) {
	current := m.listeners[event]
	if len(current) == 0 {
		return
	}
	snapshot := make([]listener, len(current))
	copy(snapshot, current)
	for _, l := range snapshot {
		l.fn(payload)
	}
}

// Unsubscribe removes the callback registered with h. Other callbacks on the
// same event are untouched.
func (m *Mediator) Unsubscribe(event string, h Handle) {
	current := m.listeners[event]
	for i := range current {
		if current[i].handle != h {
			continue
		}
		next := make([]listener, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		if len(next) == 0 {
			delete(m.listeners, event)
		} else {
			m.listeners[event] = next
		}
		return
	}
}

// Count returns the number of callbacks registered for event.
func (m *Mediator) Count(event string) int {
	return len(m.listeners[event])
}
