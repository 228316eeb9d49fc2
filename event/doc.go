// Package event provides connection-based signal dispatch between a
// frame producer and its subscribers.
//
// Two signal kinds exist: [FrameSignal] delivers rendered frames, and
// [Signal] marks a payload-free hook point (the producer's pre-render
// pass). Both run their handlers synchronously on the goroutine that
// calls Emit; for a camera, that is the render goroutine. There is no
// buffering and no back-pressure: a subscriber that is slow simply
// misses emits, it never queues them.
//
// # Connections
//
// Connect returns a [Connection]. Closing it removes the handler and
// blocks until any dispatch that includes the handler has finished, so
// after Close returns the handler is guaranteed never to run again and
// no state it touches can race with its owner's teardown.
//
// A connection fires on every emit until it is closed. For a one-shot
// pre-render hook this is a documented hazard, not a defect: the caller
// must close the connection as soon as the hook's effect is observed,
// or the hook re-runs on every subsequent pass.
//
// Handlers must not connect to or close connections on the signal that
// is dispatching them; both take the write side of the lock Emit holds.
package event
