// Package framerig provides a frame-capture and mutation-injection
// harness for verifying the visible output of asynchronous rendering
// pipelines.
//
// # Overview
//
// framerig coordinates two independently scheduled execution contexts:
// a producer goroutine driving a render loop, and a control goroutine
// running verification logic. The harness captures frames published by
// the producer into caller-owned buffers, injects state mutations onto
// the producer goroutine through a pre-render hook, and bounds every
// wait so a stalled producer can never hang the verifying process.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/framerig/capture"
//	    "github.com/gogpu/framerig/sim"
//	)
//
//	scene := sim.NewScene("shader_test")
//	box := scene.AddVisual("box::link::visual", pose, size)
//	cam, _ := scene.SpawnCamera("camera_sensor", camPose, 320, 240, 10)
//
//	cc := capture.New(framerig.RGB8, 320, 240)
//	conn := cc.Attach(cam.Frames())
//	if !cc.WaitForFrames(20, 5*time.Second) {
//	    // recorded failure, not a crash
//	}
//	conn.Close()
//	sums := analyze.ChannelSums(cc.Snapshot())
//
// # Architecture
//
// The module is organized into:
//   - Root: Frame, FrameBuffer, Format, package logger
//   - event: connection-based frame and pre-render signals
//   - capture: per-scenario capture contexts
//   - poll: bounded waits
//   - analyze: pixel aggregation and comparison
//   - sim, sim/render: simulated producer stack and renderer registry
//   - scenario: recorder, orchestration, TOML configuration
//
// # Concurrency
//
// Frame and pre-render callbacks run synchronously on the producer
// goroutine and must stay non-blocking and allocation-light. The
// control goroutine blocks only inside the poll package and in
// capture waits; disconnecting a connection is the sole cancellation
// primitive.
package framerig

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
