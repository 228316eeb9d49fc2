// Package capture accumulates frames from a producer into a
// caller-owned buffer under mutual exclusion.
//
// Each [Context] owns its buffer, counter, and mutex, so independent
// scenarios can capture in parallel without interfering. The frame
// callback does no allocation: the destination buffer is sized at
// construction, before the context is ever attached to a signal.
package capture

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/framerig"
	"github.com/gogpu/framerig/event"
)

// Context is a per-scenario capture destination. It copies each
// delivered frame into its buffer and counts deliveries.
//
// The counter is monotonically non-decreasing for the lifetime of the
// context; a fresh context starts at zero. Reads of the counter may lag
// the producer, which is safe for polling: a stale read only delays
// satisfaction of the predicate.
type Context struct {
	mu  sync.Mutex
	buf *framerig.FrameBuffer

	count   atomic.Int64
	dropped atomic.Int64

	// notify coalesces delivery notifications so waiters can block on
	// the channel instead of sleep-polling the counter.
	notify chan struct{}
}

// New creates a capture context with a destination buffer of the given
// format and geometry. Size the context to match the producer before
// attaching it; frames with different geometry are dropped, not copied.
func New(format framerig.Format, width, height int) *Context {
	return &Context{
		buf:    framerig.NewFrameBuffer(format, width, height),
		notify: make(chan struct{}, 1),
	}
}

// Attach subscribes the context to a frame signal. The returned
// connection must be closed before the context's owner tears down; once
// Close returns, no further callback touches the buffer.
//
// Attaching the same context to multiple signals interleaves their
// frames into one buffer, which is rarely what a scenario wants; use
// one context per producer.
func (c *Context) Attach(src *event.FrameSignal) *event.Connection {
	return src.Connect(c.onFrame)
}

// onFrame runs on the producer goroutine inside its frame-composition
// critical path. It must stay non-blocking and allocation-free.
func (c *Context) onFrame(f framerig.Frame) {
	if !c.buf.Matches(f) || len(f.Data) < c.buf.Len() {
		if c.dropped.Add(1) == 1 {
			framerig.Logger().Warn("capture: frame geometry mismatch, dropping",
				"got_w", f.Width, "got_h", f.Height, "got_depth", f.Depth,
				"want_w", c.buf.Width(), "want_h", c.buf.Height(), "want_depth", c.buf.Depth())
		}
		return
	}

	c.mu.Lock()
	copy(c.buf.Bytes(), f.Data[:c.buf.Len()])
	c.count.Add(1)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Count returns the number of frames captured so far.
func (c *Context) Count() int {
	return int(c.count.Load())
}

// Dropped returns the number of frames rejected for geometry mismatch.
func (c *Context) Dropped() int {
	return int(c.dropped.Load())
}

// Snapshot returns an independent copy of the capture buffer, taken
// under the same mutex the frame callback holds while writing. This is
// the only read path guaranteed free of torn frames while a producer is
// still attached.
func (c *Context) Snapshot() *framerig.FrameBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Snapshot()
}

// Checksum returns the CRC-32 of the capture buffer under the capture
// mutex. Used to verify disconnect safety: two checksums taken after a
// connection is closed must be equal no matter how many frames the
// producer emits in between.
func (c *Context) Checksum() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Checksum()
}

// Buffer returns the destination buffer itself. Callers must not read
// it while a producer is attached except through Snapshot or Checksum.
func (c *Context) Buffer() *framerig.FrameBuffer {
	return c.buf
}

// Notify returns a channel that receives (coalesced) after each capture.
// It never blocks the producer: sends are dropped when the channel is
// full.
func (c *Context) Notify() <-chan struct{} {
	return c.notify
}

// WaitForFrames blocks until at least n frames have been captured or
// the timeout elapses, returning whether the target was reached. It
// waits on delivery notifications rather than sleep-polling, and always
// returns within the timeout regardless of producer behavior.
//
// A false return is a first-class result for the caller to record, not
// an error condition.
func (c *Context) WaitForFrames(n int, timeout time.Duration) bool {
	if c.Count() >= n {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-c.notify:
			if c.Count() >= n {
				return true
			}
		case <-timer.C:
			return c.Count() >= n
		}
	}
}
