// Package analyze computes pixel aggregates over captured frame
// buffers and compares them against expectations.
//
// Two verification modes are provided: exact matching for known flat
// renders, and relative intensity comparison for qualitative effects
// (occlusion, shadowing) where exact pixel equality would be brittle
// under anti-aliasing and float rounding.
package analyze

import (
	"errors"
	"fmt"

	"github.com/gogpu/framerig"
)

// DefaultMinRatio is the relative-difference threshold used by shadow
// comparisons when the caller does not configure one.
const DefaultMinRatio = 0.05

// ErrGeometryMismatch is returned when two buffers under comparison do
// not share width, height, and depth.
var ErrGeometryMismatch = errors.New("analyze: buffer geometry mismatch")

// ChannelSums returns the per-channel sums over all pixels. The result
// has one entry per channel (3 for RGB8, 4 for RGBA8).
func ChannelSums(fb *framerig.FrameBuffer) []uint64 {
	depth := fb.Depth()
	sums := make([]uint64, depth)
	data := fb.Bytes()
	for i := 0; i < len(data); i += depth {
		for c := 0; c < depth; c++ {
			sums[c] += uint64(data[i+c])
		}
	}
	return sums
}

// Sum returns the total intensity across all channels and pixels.
func Sum(fb *framerig.FrameBuffer) uint64 {
	var total uint64
	for _, b := range fb.Bytes() {
		total += uint64(b)
	}
	return total
}

// Mean returns the average channel value across the whole buffer.
func Mean(fb *framerig.FrameBuffer) float64 {
	n := fb.Len()
	if n == 0 {
		return 0
	}
	return float64(Sum(fb)) / float64(n)
}

// MismatchError describes the first pixel that failed an exact match.
type MismatchError struct {
	X, Y    int
	Got     []byte
	Want    []byte
	Matched int // pixels that matched before the failure
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("analyze: pixel (%d,%d) = %v, want %v (%d pixels matched before)",
		e.X, e.Y, e.Got, e.Want, e.Matched)
}

// ExactMatch verifies that every pixel's channel values equal want,
// which must have exactly one byte per channel. It returns nil on
// success and a *MismatchError naming the first offending pixel
// otherwise.
func ExactMatch(fb *framerig.FrameBuffer, want []byte) error {
	depth := fb.Depth()
	if len(want) != depth {
		return fmt.Errorf("analyze: expected value has %d channels, buffer has %d", len(want), depth)
	}
	data := fb.Bytes()
	width := fb.Width()
	for i := 0; i < len(data); i += depth {
		for c := 0; c < depth; c++ {
			if data[i+c] != want[c] {
				px := i / depth
				got := make([]byte, depth)
				copy(got, data[i:i+depth])
				return &MismatchError{
					X:       px % width,
					Y:       px / width,
					Got:     got,
					Want:    append([]byte(nil), want...),
					Matched: px,
				}
			}
		}
	}
	return nil
}

// Comparison is the result of a relative intensity comparison between
// a darker and a brighter buffer. Both sums are carried so a failed
// expectation can report them together.
type Comparison struct {
	DarkSum   uint64
	BrightSum uint64
	MinRatio  float64
}

// Ratio returns (bright - dark) / bright, or 0 when the bright sum is
// zero (an all-black reference cannot evidence shadowing) or the dark
// buffer is not actually darker.
func (c Comparison) Ratio() float64 {
	if c.BrightSum == 0 || c.DarkSum >= c.BrightSum {
		return 0
	}
	return float64(c.BrightSum-c.DarkSum) / float64(c.BrightSum)
}

// Ok reports whether the dark buffer is strictly darker and the
// relative difference exceeds the configured threshold.
func (c Comparison) Ok() bool {
	return c.DarkSum < c.BrightSum && c.Ratio() > c.MinRatio
}

func (c Comparison) String() string {
	return fmt.Sprintf("darkSum=%d brightSum=%d ratio=%.4f (min %.4f)",
		c.DarkSum, c.BrightSum, c.Ratio(), c.MinRatio)
}

// CompareDarker sums channel intensities across two buffers of
// identical geometry and reports whether dark is darker than bright by
// more than minRatio. A non-positive minRatio selects DefaultMinRatio.
func CompareDarker(dark, bright *framerig.FrameBuffer, minRatio float64) (Comparison, error) {
	if dark.Width() != bright.Width() || dark.Height() != bright.Height() ||
		dark.Depth() != bright.Depth() {
		return Comparison{}, fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrGeometryMismatch,
			dark.Width(), dark.Height(), dark.Depth(),
			bright.Width(), bright.Height(), bright.Depth())
	}
	if minRatio <= 0 {
		minRatio = DefaultMinRatio
	}
	return Comparison{
		DarkSum:   Sum(dark),
		BrightSum: Sum(bright),
		MinRatio:  minRatio,
	}, nil
}
