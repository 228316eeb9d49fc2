package framerig

import (
	"github.com/gogpu/gputypes"
)

// Format identifies the pixel layout of a frame.
type Format int

// Supported pixel formats.
const (
	// FormatUnknown is the zero value; no geometry can be derived from it.
	FormatUnknown Format = iota
	// RGB8 is 3 bytes per pixel, red first.
	RGB8
	// RGBA8 is 4 bytes per pixel, red first, alpha last.
	RGBA8
)

// Channels returns the number of bytes per pixel for the format.
func (f Format) Channels() int {
	switch f {
	case RGB8:
		return 3
	case RGBA8:
		return 4
	default:
		return 0
	}
}

// String returns the format tag as used in frame callbacks.
func (f Format) String() string {
	switch f {
	case RGB8:
		return "RGB8"
	case RGBA8:
		return "RGBA8"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format tag string. Unrecognized tags yield
// FormatUnknown.
func ParseFormat(tag string) Format {
	switch tag {
	case "RGB8":
		return RGB8
	case "RGBA8":
		return RGBA8
	default:
		return FormatUnknown
	}
}

// TextureFormat maps the format to its GPU texture format. RGB8 has no
// direct texture equivalent (GPU targets are 4-channel); renderers that
// need a texture must use RGBA8 and let the capture side ignore alpha.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case RGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}
