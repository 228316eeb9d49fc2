package scenario

import (
	"context"
	"errors"

	"github.com/gogpu/framerig/analyze"
	"github.com/gogpu/framerig/capture"
	"github.com/gogpu/framerig/sim"
	"github.com/gogpu/framerig/sim/render"
)

// Shadow verifies a qualitative effect: a camera under shadow-casting
// geometry captures strictly darker frames than an identical camera in
// the open, by more than the configured ratio. The comparison is
// relative: exact pixel equality would be too brittle here, since
// renderers differ in anti-aliasing and rounding.
type Shadow struct {
	machine
}

// NewShadow creates the shadow scenario.
func NewShadow() *Shadow {
	return &Shadow{machine{name: "cast_shadows", state: StateIdle}}
}

// Name returns the scenario name.
func (s *Shadow) Name() string {
	return s.machine.name
}

// Run executes the scenario.
func (s *Shadow) Run(ctx context.Context, cfg Config, r *Recorder) {
	if !pickRenderer(cfg, r) {
		return
	}

	s.to(StateSpawning)
	scene := sim.NewScene("visual_shadows")
	defer scene.Close()
	scene.UseRenderer(cfg.Renderer)

	ground := scene.AddVisual("ground_plane::link::visual",
		sim.NewPose(0, 0, 0, 0, 0, 0), sim.Vec3{X: 100, Y: 100, Z: 0.1})
	if err := ground.Material().SetShaderParam("color", sim.StageFragment, "1 1 1 1"); err != nil {
		r.Fatalf("set ground color: %v", err)
		return
	}

	// Mesh hanging over the first camera; casts the shadow.
	roof := scene.AddVisual("roof::link::visual",
		sim.NewPose(0, 0, 2, 0, 0, 0), sim.Vec3{X: 2, Y: 2, Z: 0.1})
	roof.SetCastShadows(true)

	shadedPose := sim.NewPose(0, 0, 0.5, 0, 1.57, 0)
	openPose := sim.NewPose(0, 10, 0.5, 0, 1.57, 0)

	shaded, err := scene.SpawnCamera("camera_sensor", shadedPose,
		cfg.Width, cfg.Height, cfg.UpdateRate)
	if err != nil {
		if errors.Is(err, render.ErrNotAvailable) {
			r.Skipf("renderer unavailable: %v", err)
			return
		}
		r.Fatalf("spawn shaded camera: %v", err)
		return
	}
	open, err := scene.SpawnCamera("camera_sensor2", openPose,
		cfg.Width, cfg.Height, cfg.UpdateRate)
	if err != nil {
		r.Fatalf("spawn open camera: %v", err)
		return
	}
	r.Check(shaded.Pose() == shadedPose, "shaded camera at requested pose")
	r.Check(open.Pose() == openPose, "open camera at requested pose")

	s.to(StateCapturing)
	ccShaded := capture.New(shaded.Format(), cfg.Width, cfg.Height)
	ccOpen := capture.New(open.Format(), cfg.Width, cfg.Height)
	connShaded := ccShaded.Attach(shaded.Frames())
	connOpen := ccOpen.Attach(open.Frames())

	gotShaded := ccShaded.WaitForFrames(cfg.TargetFrames, cfg.CaptureTimeout)
	r.Checkf(gotShaded, "captured shaded camera frames",
		"count=%d want>=%d", ccShaded.Count(), cfg.TargetFrames)
	gotOpen := ccOpen.WaitForFrames(cfg.TargetFrames, cfg.CaptureTimeout)
	r.Checkf(gotOpen, "captured open camera frames",
		"count=%d want>=%d", ccOpen.Count(), cfg.TargetFrames)

	s.to(StateVerifying)
	connShaded.Close()
	connOpen.Close()

	cmp, err := analyze.CompareDarker(ccShaded.Snapshot(), ccOpen.Snapshot(), cfg.MinShadowRatio)
	if err != nil {
		r.Fatalf("compare buffers: %v", err)
		return
	}
	// Both sums travel with the verdict so a failure is diagnosable
	// from the report alone.
	r.Checkf(cmp.DarkSum < cmp.BrightSum, "shaded camera darker than open camera", "%s", cmp)
	r.Checkf(cmp.Ratio() > cmp.MinRatio, "shadow ratio above threshold", "%s", cmp)

	s.to(r.Report().State())
}
