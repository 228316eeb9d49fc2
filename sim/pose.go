package sim

import (
	"github.com/chewxy/math32"
)

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceXY returns the distance between v and o projected onto the
// ground plane. Shadow tests reason in this plane: an occluder is "over"
// a camera when their XY distance is small, whatever the heights.
func (v Vec3) DistanceXY(o Vec3) float32 {
	return math32.Hypot(v.X-o.X, v.Y-o.Y)
}

// Pose is a position plus Euler orientation (roll, pitch, yaw in
// radians).
type Pose struct {
	Pos Vec3
	Rot Vec3
}

// NewPose builds a pose from position and Euler components.
func NewPose(x, y, z, roll, pitch, yaw float32) Pose {
	return Pose{
		Pos: Vec3{x, y, z},
		Rot: Vec3{roll, pitch, yaw},
	}
}
