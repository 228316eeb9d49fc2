package event

import (
	"sync"
)

// Signal is a payload-free hook point. The producer emits it once per
// pass (immediately before frame composition); handlers run
// synchronously on the emitting goroutine in connect order.
//
// The zero value is ready to use.
type Signal struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers []namedHandler
}

type namedHandler struct {
	id uint64
	fn func()
}

// Connect registers fn to run on every emit until the returned
// connection is closed.
func (s *Signal) Connect(fn func()) *Connection {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, namedHandler{id: id, fn: fn})
	s.mu.Unlock()

	return &Connection{release: func() { s.disconnect(id) }}
}

// Emit invokes all connected handlers on the calling goroutine.
// Handlers connected while an emit is in flight are not retroactively
// invoked for that emit.
func (s *Signal) Emit() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.handlers {
		h.fn()
	}
}

// Len returns the number of connected handlers.
func (s *Signal) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}

// disconnect removes the handler with the given id. Taking the write
// lock here is what makes Connection.Close wait out in-flight emits.
func (s *Signal) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}
