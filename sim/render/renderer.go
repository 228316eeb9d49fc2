package render

import (
	"errors"

	"github.com/gogpu/framerig"
)

// Common renderer errors.
var (
	// ErrNotAvailable is returned when a requested renderer cannot run
	// on this machine (e.g. no GPU adapter for the native renderer).
	ErrNotAvailable = errors.New("render: not available")

	// ErrNotInitialized is returned when Render is called before Init.
	ErrNotInitialized = errors.New("render: not initialized")

	// ErrUnsupportedFormat is returned for target formats a renderer
	// cannot produce.
	ErrUnsupportedFormat = errors.New("render: unsupported format")
)

// View is everything a renderer needs to compose one frame of the
// simulated scene: the flat color of the visual in view and the scene
// illumination at the camera, already resolved on the render goroutine.
type View struct {
	// Color is the RGBA color of the visual the camera sees, in
	// [0,1] components. A camera looking at nothing sees black.
	Color [4]float32

	// Illumination scales the color channels; shadow-casting geometry
	// above the camera's footprint attenuates it below 1.
	Illumination float32
}

// Renderer composes frames into a frame buffer. Implementations are
// owned by a single camera and are only called from its render
// goroutine, so they need no internal locking.
type Renderer interface {
	// Name returns the renderer identifier (e.g. "software", "native").
	Name() string

	// Init prepares the renderer. It is called once before the first
	// Render and reports ErrNotAvailable when the machine lacks the
	// required capability.
	Init() error

	// Close releases renderer resources. The renderer must not be used
	// after Close.
	Close()

	// Render composes one frame of the view into dst. dst geometry is
	// fixed; Render must write exactly dst.Len() bytes and nothing
	// else.
	Render(dst *framerig.FrameBuffer, view View) error
}
