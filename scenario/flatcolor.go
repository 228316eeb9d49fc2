package scenario

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gogpu/framerig/analyze"
	"github.com/gogpu/framerig/capture"
	"github.com/gogpu/framerig/poll"
	"github.com/gogpu/framerig/sim"
	"github.com/gogpu/framerig/sim/render"
)

// FlatColor verifies that a camera facing a flat red visual captures
// exactly (255,0,0) everywhere, then mutates the visual's fragment
// "color" parameter to "0 1 0 1" through the pre-render hook and
// verifies the recapture is exactly (0,255,0) everywhere.
//
// This reproduces the shader-parameter test of the reference harness:
// the mutation must land on the render goroutine, take effect in a
// specific frame, and be confirmed before the second capture begins.
type FlatColor struct {
	machine
}

// NewFlatColor creates the flat-color scenario.
func NewFlatColor() *FlatColor {
	return &FlatColor{machine{name: "flat_color", state: StateIdle}}
}

// Name returns the scenario name.
func (f *FlatColor) Name() string {
	return f.machine.name
}

// Run executes the scenario.
func (f *FlatColor) Run(ctx context.Context, cfg Config, r *Recorder) {
	if !pickRenderer(cfg, r) {
		return
	}

	f.to(StateSpawning)
	scene := sim.NewScene("shader_test")
	defer scene.Close()
	scene.UseRenderer(cfg.Renderer)

	box := scene.AddVisual("box::link::visual",
		sim.NewPose(0, 0, 0, 0, 0, 0), sim.Vec3{X: 1, Y: 1, Z: 1})
	if err := box.Material().SetShaderParam("color", sim.StageFragment, "1 0 0 1"); err != nil {
		r.Fatalf("set initial color: %v", err)
		return
	}

	camPose := sim.NewPose(0, 0, 0.5, 0, 1.57, 0)
	cam, err := scene.SpawnCamera("camera_sensor", camPose,
		cfg.Width, cfg.Height, cfg.UpdateRate)
	if err != nil {
		if errors.Is(err, render.ErrNotAvailable) {
			r.Skipf("renderer unavailable: %v", err)
			return
		}
		r.Fatalf("spawn camera: %v", err)
		return
	}
	r.Check(cam.Pose() == camPose, "camera spawned at requested pose")

	// First capture: the subscription contract is "first N frames after
	// attach", not "the first N frames ever produced".
	f.to(StateCapturing)
	cc := capture.New(cam.Format(), cfg.Width, cfg.Height)
	conn := cc.Attach(cam.Frames())
	got := cc.WaitForFrames(cfg.TargetFrames, cfg.CaptureTimeout)
	r.Checkf(got, "captured initial frames",
		"count=%d want>=%d", cc.Count(), cfg.TargetFrames)

	f.to(StateVerifying)
	conn.Close()
	matchErr := analyze.ExactMatch(cc.Snapshot(), []byte{255, 0, 0})
	r.Checkf(matchErr == nil, "every pixel red before mutation", "%v", matchErr)

	// Inject the mutation on the render goroutine. The hook fires on
	// every pre-render pass until closed; the flag gates re-execution
	// and the connection is closed as soon as the flag is observed.
	f.to(StateMutating)
	req := sim.MutationRequest{
		VisualName: "box::link::visual",
		Param:      "color",
		Stage:      sim.StageFragment,
		Value:      "0 1 0 1",
	}
	var started, applied atomic.Bool
	var applyErr atomic.Pointer[error]
	hook := scene.RunBeforeRender(func() {
		if !started.CompareAndSwap(false, true) {
			return
		}
		if err := scene.ApplyMutation(req); err != nil {
			applyErr.Store(&err)
		}
		applied.Store(true)
	})

	f.to(StateAwaitingMutation)
	confirmed := poll.UntilContext(ctx, applied.Load, cfg.PollInterval, cfg.MutationTimeout)
	hook.Close()
	r.Check(confirmed, "mutation applied before deadline")
	if errp := applyErr.Load(); errp != nil {
		if errors.Is(*errp, sim.ErrVisualNotFound) {
			r.Fatalf("mutation target lookup: %v", *errp)
			return
		}
		r.Checkf(false, "mutation applied cleanly", "%v", *errp)
	}

	// Second capture with a fresh sink, counter, and buffer. Frames
	// captured after the confirmation are guaranteed to reflect the
	// mutation; frames before it carry no such guarantee, hence the
	// fresh context.
	f.to(StateCapturing)
	cc2 := capture.New(cam.Format(), cfg.Width, cfg.Height)
	conn2 := cc2.Attach(cam.Frames())
	got2 := cc2.WaitForFrames(cfg.TargetFrames, cfg.CaptureTimeout)
	r.Checkf(got2, "captured frames after mutation",
		"count=%d want>=%d", cc2.Count(), cfg.TargetFrames)

	f.to(StateVerifying)
	conn2.Close()
	matchErr = analyze.ExactMatch(cc2.Snapshot(), []byte{0, 255, 0})
	r.Checkf(matchErr == nil, "every pixel green after mutation", "%v", matchErr)

	f.to(r.Report().State())
}
