// Package sim provides the producer side of the harness: a minimal
// simulated world with visuals, materials carrying shader parameters,
// and cameras that render frames on their own goroutines.
//
// The simulation is a deterministic stand-in for a full rendering
// engine, not a shading reference. Its job is to give the capture
// harness real asynchronous producers: each camera runs a render loop
// that emits a pre-render signal, composes a frame through a pluggable
// renderer (see sim/render), and publishes it on a frame signal.
//
// # Threading
//
// Renderer-owned state (materials, shader parameters) must only be
// mutated from a render goroutine. Control code marshals mutations
// through Scene.RunBeforeRender, which fires at the defined point
// before each frame composition, the same contract a real engine's
// pre-render event provides.
package sim
