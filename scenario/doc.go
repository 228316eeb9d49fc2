// Package scenario orchestrates capture-and-verify runs against
// simulated producers.
//
// A scenario walks a fixed state machine: spawn producers, capture a
// first batch of frames, verify them, inject a mutation through the
// pre-render hook, await its confirmation, capture and verify a second
// batch. Every expectation is recorded on a [Recorder] and the terminal
// Done/Failed state is an aggregate of all recorded outcomes; a failed
// check never short-circuits the remaining independent checks.
//
// Three outcomes are distinguished:
//   - a missing capability (no usable renderer) skips the scenario,
//     since the environment lacks the prerequisite;
//   - a failed lookup (visual or camera not found) aborts the scenario,
//     because the remaining steps have no valid target;
//   - a timeout or pixel mismatch is recorded and execution continues,
//     to maximize diagnostic yield from one run.
package scenario
