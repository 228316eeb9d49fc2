package event

import (
	"sync"
)

// Connection is an opaque handle for an active subscription. Exactly
// one handler is associated with a live connection.
type Connection struct {
	once    sync.Once
	release func()
}

// Close disconnects the handler. It blocks until any in-flight dispatch
// that includes the handler has completed; after Close returns the
// handler will not be invoked again. Close is idempotent and safe to
// call concurrently with Emit on the owning signal, but must not be
// called from inside a handler.
func (c *Connection) Close() {
	if c == nil {
		return
	}
	c.once.Do(c.release)
}
