package render

import (
	"github.com/gogpu/framerig"
)

// Renderer name constants.
const (
	// Software is the name of the CPU-based renderer.
	Software = "software"
	// Native is the name of the GPU renderer (gogpu/wgpu).
	Native = "native"
)

// SoftwareRenderer composes frames on the CPU with deterministic flat
// shading: every pixel is the view color scaled by the scene
// illumination. Exact-match verification depends on the output being
// fully deterministic.
type SoftwareRenderer struct {
	initialized bool
}

// init registers the software renderer on package import.
func init() {
	Register(Software, func() Renderer {
		return &SoftwareRenderer{}
	})
}

// NewSoftwareRenderer creates a new software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Name returns the renderer identifier.
func (r *SoftwareRenderer) Name() string {
	return Software
}

// Init prepares the renderer. The software path is always available.
func (r *SoftwareRenderer) Init() error {
	r.initialized = true
	return nil
}

// Close releases renderer resources.
func (r *SoftwareRenderer) Close() {
	r.initialized = false
}

// Render fills dst with the illuminated view color.
func (r *SoftwareRenderer) Render(dst *framerig.FrameBuffer, view View) error {
	if !r.initialized {
		return ErrNotInitialized
	}

	depth := dst.Depth()
	if depth != 3 && depth != 4 {
		return ErrUnsupportedFormat
	}

	illum := view.Illumination
	if illum < 0 {
		illum = 0
	} else if illum > 1 {
		illum = 1
	}

	var px [4]byte
	for c := 0; c < 3; c++ {
		px[c] = channelByte(view.Color[c] * illum)
	}
	// Alpha is not lit.
	px[3] = channelByte(view.Color[3])

	data := dst.Bytes()
	for i := 0; i < len(data); i += depth {
		for c := 0; c < depth; c++ {
			data[i+c] = px[c]
		}
	}
	return nil
}

// channelByte converts a [0,1] channel value to a byte, clamping out of
// range input.
func channelByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
