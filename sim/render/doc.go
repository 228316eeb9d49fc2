// Package render provides a pluggable frame renderer abstraction for
// the simulated producer stack.
//
// Renderers are registered via init() functions and selected at
// runtime. The software renderer is always available and is registered
// on import; the native renderer requires a usable wgpu adapter and
// reports ErrNotAvailable from Init when the machine has none. A
// missing renderer is the "unavailable capability" input for scenarios:
// they skip, they do not fail.
//
// # Selection
//
//	// Best available renderer (native preferred, software fallback)
//	r, err := render.InitDefault()
//
//	// Or request a specific renderer by name
//	r := render.Get(render.Software)
package render
