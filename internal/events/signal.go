// Package events provides typed signals that world components connect to,
// such as key presses and simulation ticks.
package events

import (
	"sort"

	"github.com/vovakirdan/tui-pilas/internal/core"
)

// HandlerID identifies a connected handler so it can be disconnected.
type HandlerID int

// Signal delivers values of type T to every connected handler, in the
// order they were connected. Signals are used from a single goroutine.
type Signal[T any] struct {
	next     HandlerID
	handlers map[HandlerID]func(T)
}

// Connect registers fn and returns its handle.
func (s *Signal[T]) Connect(fn func(T)) HandlerID {
	if s.handlers == nil {
		s.handlers = make(map[HandlerID]func(T))
	}
	s.next++
	s.handlers[s.next] = fn
	return s.next
}

// Disconnect removes a handler. Unknown ids are ignored.
func (s *Signal[T]) Disconnect(id HandlerID) {
	delete(s.handlers, id)
}

// DisconnectAll removes every handler.
func (s *Signal[T]) DisconnectAll() {
	s.handlers = nil
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Emit calls every handler with v.
func (s *Signal[T]) Emit(v T) {
	ids := make([]HandlerID, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		// A handler may disconnect another one while we iterate.
		if fn, ok := s.handlers[id]; ok {
			fn(v)
		}
	}
}

// Hub groups the signals a world exposes.
type Hub struct {
	KeyPressed  Signal[core.KeyEvent]
	KeyReleased Signal[core.KeyEvent]
	Tick        Signal[int]
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Attach connects a keyboard control to the hub's key signals.
func (h *Hub) Attach(c *core.Control) {
	h.KeyPressed.Connect(c.OnKeyPressed)
	h.KeyReleased.Connect(c.OnKeyReleased)
}
