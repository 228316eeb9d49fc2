package event

import (
	"sync"

	"github.com/gogpu/framerig"
)

// FrameSignal announces newly composed frames. The producer emits it
// once per frame with a borrowed pixel view; handlers run synchronously
// on the emitting goroutine and must not retain the frame's data beyond
// the call.
//
// The zero value is ready to use.
type FrameSignal struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers []frameHandler
}

type frameHandler struct {
	id uint64
	fn func(framerig.Frame)
}

// Connect registers fn to receive every frame emitted after Connect
// returns, until the returned connection is closed. Frames emitted
// before the subscription was in place are not redelivered.
func (s *FrameSignal) Connect(fn func(framerig.Frame)) *Connection {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, frameHandler{id: id, fn: fn})
	s.mu.Unlock()

	return &Connection{release: func() { s.disconnect(id) }}
}

// Emit delivers f to all connected handlers on the calling goroutine.
// f.Data is borrowed: it belongs to the producer and may be overwritten
// as soon as Emit returns.
func (s *FrameSignal) Emit(f framerig.Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.handlers {
		h.fn(f)
	}
}

// Len returns the number of connected handlers.
func (s *FrameSignal) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}

func (s *FrameSignal) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}
