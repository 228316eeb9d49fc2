package framerig

import (
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Frame is a borrowed view of one rendered image as delivered to frame
// callbacks. Data is owned by the producer and is valid only for the
// duration of the callback; handlers that need the pixels afterwards
// must copy them (see capture.Context).
type Frame struct {
	Data   []byte
	Width  int
	Height int
	Depth  int
	Format Format
}

// Len returns the expected byte length of the frame's pixel data.
func (f Frame) Len() int {
	return f.Width * f.Height * f.Depth
}

// FrameBuffer is an owned pixel buffer with fixed geometry. The length
// of the underlying data never changes after creation; writers must
// never exceed the declared bounds.
type FrameBuffer struct {
	width  int
	height int
	depth  int
	format Format
	data   []byte
}

// NewFrameBuffer creates a frame buffer sized width*height*channels for
// the given format.
func NewFrameBuffer(format Format, width, height int) *FrameBuffer {
	depth := format.Channels()
	return &FrameBuffer{
		width:  width,
		height: height,
		depth:  depth,
		format: format,
		data:   make([]byte, width*height*depth),
	}
}

// Width returns the buffer width in pixels.
func (b *FrameBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *FrameBuffer) Height() int {
	return b.height
}

// Depth returns the channel count (bytes per pixel).
func (b *FrameBuffer) Depth() int {
	return b.depth
}

// Format returns the pixel format.
func (b *FrameBuffer) Format() Format {
	return b.format
}

// Bytes returns the raw pixel data. Callers sharing the buffer with a
// producer-side writer must serialize access externally; the buffer
// itself carries no lock.
func (b *FrameBuffer) Bytes() []byte {
	return b.data
}

// Len returns the byte length of the pixel data.
func (b *FrameBuffer) Len() int {
	return len(b.data)
}

// Matches reports whether a frame has the same geometry and format as
// the buffer, making it safe to copy into it.
func (b *FrameBuffer) Matches(f Frame) bool {
	return f.Width == b.width && f.Height == b.height &&
		f.Depth == b.depth && f.Format == b.format
}

// Snapshot returns an independent copy of the buffer.
func (b *FrameBuffer) Snapshot() *FrameBuffer {
	c := &FrameBuffer{
		width:  b.width,
		height: b.height,
		depth:  b.depth,
		format: b.format,
		data:   make([]byte, len(b.data)),
	}
	copy(c.data, b.data)
	return c
}

// Checksum returns an IEEE CRC-32 of the pixel data. Two checksums
// taken around a window in which no writer ran are equal; the harness
// uses this to verify disconnect safety.
func (b *FrameBuffer) Checksum() uint32 {
	return crc32.ChecksumIEEE(b.data)
}

// Pixel returns the channel values of the pixel at (x, y).
// The returned slice aliases the buffer.
func (b *FrameBuffer) Pixel(x, y int) []byte {
	i := (y*b.width + x) * b.depth
	return b.data[i : i+b.depth]
}

// At implements the image.Image interface.
func (b *FrameBuffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	p := b.Pixel(x, y)
	c := color.RGBA{A: 0xff}
	switch b.format {
	case RGB8:
		c.R, c.G, c.B = p[0], p[1], p[2]
	case RGBA8:
		c.R, c.G, c.B, c.A = p[0], p[1], p[2], p[3]
	}
	return c
}

// Bounds implements the image.Image interface.
func (b *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *FrameBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// ToImage converts the buffer to an image.RGBA.
func (b *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	switch b.format {
	case RGBA8:
		copy(img.Pix, b.data)
	default:
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				img.Set(x, y, b.At(x, y))
			}
		}
	}
	return img
}

// SavePNG writes the buffer to a PNG file. Intended for diagnostics
// when a verification fails.
func (b *FrameBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, b.ToImage())
}
