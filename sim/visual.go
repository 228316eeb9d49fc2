package sim

// Visual is a named scene element with a pose, a bounding size, and a
// material. Visuals are added during scene setup, before cameras spawn;
// after that, only their material changes, and only through the
// pre-render hook.
type Visual struct {
	name        string
	pose        Pose
	size        Vec3
	castShadows bool
	material    *Material
}

func newVisual(name string, pose Pose, size Vec3) *Visual {
	return &Visual{
		name:     name,
		pose:     pose,
		size:     size,
		material: NewMaterial(1, 1, 1, 1),
	}
}

// Name returns the visual's scoped name (e.g. "box::link::visual").
func (v *Visual) Name() string {
	return v.name
}

// Pose returns the visual's pose.
func (v *Visual) Pose() Pose {
	return v.pose
}

// Size returns the visual's bounding size.
func (v *Visual) Size() Vec3 {
	return v.size
}

// Material returns the visual's material.
func (v *Visual) Material() *Material {
	return v.material
}

// CastShadows reports whether the visual occludes light.
func (v *Visual) CastShadows() bool {
	return v.castShadows
}

// SetCastShadows marks the visual as an occluder. Call during scene
// setup.
func (v *Visual) SetCastShadows(cast bool) {
	v.castShadows = cast
}

// footprint returns the visual's occlusion radius in the ground plane.
func (v *Visual) footprint() float32 {
	if v.size.X > v.size.Y {
		return v.size.X
	}
	return v.size.Y
}
