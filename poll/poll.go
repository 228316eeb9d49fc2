// Package poll provides bounded-time waits for conditions mutated by
// uncontrolled external subsystems.
//
// The producer side of a render pipeline does not always expose a
// notification hook, so the baseline primitive is a sleep-poll with a
// hard deadline: it checks a predicate at fixed intervals and gives up
// when the budget is spent. Callers must treat a false return as an
// assertable, reportable failure rather than a reason to crash; a
// stuck producer can delay a verdict but never hang the process.
//
// Where the producer can notify, prefer capture.Context.WaitForFrames,
// which blocks on delivery instead of spinning.
package poll

import (
	"context"
	"time"
)

// DefaultInterval is the polling interval used by Until when the caller
// passes a non-positive interval.
const DefaultInterval = 10 * time.Millisecond

// Until repeatedly evaluates pred every interval until it returns true
// or the timeout elapses. It returns true as soon as the predicate
// holds, false on exhaustion, and always returns within
// timeout + interval of wall-clock time.
//
// pred runs on the calling goroutine and should be cheap and
// side-effect free; an unguarded read of a monotonic counter is fine
// (a stale value only delays success by one interval).
func Until(pred func() bool, interval, timeout time.Duration) bool {
	if interval <= 0 {
		interval = DefaultInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		if pred() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}

// UntilContext is Until with cancellation: it additionally returns
// false as soon as ctx is done. The predicate is evaluated once before
// any wait, so an already-satisfied condition wins over an
// already-cancelled context.
func UntilContext(ctx context.Context, pred func() bool, interval, timeout time.Duration) bool {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if pred() {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return pred()
		case <-tick.C:
			if pred() {
				return true
			}
		}
	}
}
