package event

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSignal_EmitInvokesInConnectOrder(t *testing.T) {
	var s Signal
	var order []int

	c1 := s.Connect(func() { order = append(order, 1) })
	c2 := s.Connect(func() { order = append(order, 2) })
	defer c1.Close()
	defer c2.Close()

	s.Emit()
	s.Emit()

	want := []int{1, 2, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("got %d invocations, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("invocation %d = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestSignal_FiresEveryEmitUntilClosed(t *testing.T) {
	var s Signal
	var n int
	c := s.Connect(func() { n++ })

	for i := 0; i < 5; i++ {
		s.Emit()
	}
	if n != 5 {
		t.Errorf("handler ran %d times before close, want 5", n)
	}

	c.Close()
	s.Emit()
	s.Emit()
	if n != 5 {
		t.Errorf("handler ran %d times after close, want 5", n)
	}
}

func TestSignal_CloseIsIdempotent(t *testing.T) {
	var s Signal
	c := s.Connect(func() {})
	c.Close()
	c.Close()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after double close, want 0", s.Len())
	}

	// Closing a nil connection is a no-op too.
	var nilConn *Connection
	nilConn.Close()
}

func TestSignal_CloseRemovesOnlyItsHandler(t *testing.T) {
	var s Signal
	var a, b int
	ca := s.Connect(func() { a++ })
	cb := s.Connect(func() { b++ })
	defer cb.Close()

	ca.Close()
	s.Emit()

	if a != 0 {
		t.Errorf("closed handler ran %d times, want 0", a)
	}
	if b != 1 {
		t.Errorf("remaining handler ran %d times, want 1", b)
	}
}

// TestSignal_NoCallbackAfterCloseReturns hammers emit from a producer
// goroutine while the control side connects and disconnects. After
// Close returns, the handler must never run again, even with emits
// still in flight.
func TestSignal_NoCallbackAfterCloseReturns(t *testing.T) {
	var s Signal
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				s.Emit()
			}
		}
	}()

	for i := 0; i < 100; i++ {
		var fired atomic.Int64
		c := s.Connect(func() { fired.Add(1) })
		// Let the emitter run with the handler installed.
		time.Sleep(100 * time.Microsecond)
		c.Close()
		after := fired.Load()
		time.Sleep(100 * time.Microsecond)
		if got := fired.Load(); got != after {
			t.Fatalf("iteration %d: handler fired after Close returned (%d -> %d)", i, after, got)
		}
	}

	close(done)
	wg.Wait()
}
