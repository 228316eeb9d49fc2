// Command framerig-view opens a window showing a live feed from a
// simulated camera, toggling the target visual between red and green
// through the pre-render mutation hook every couple of seconds.
//
// It is a development aid for eyeballing producer behavior; the
// verification path is cmd/framerig.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/framerig/capture"
	"github.com/gogpu/framerig/event"
	"github.com/gogpu/framerig/sim"
)

const toggleEvery = 2 * time.Second

type viewer struct {
	scene *sim.Scene
	cam   *sim.Camera
	cc    *capture.Context

	scaled *image.RGBA

	// One-shot mutation hook state: the connection stays open until the
	// applied flag is observed, then is closed from Update. Leaving it
	// open would re-apply the mutation on every pre-render pass.
	hook       *event.Connection
	applied    atomic.Bool
	green      bool
	lastToggle time.Time
}

func (v *viewer) Update() error {
	if v.hook != nil {
		if !v.applied.Load() {
			return nil
		}
		v.hook.Close()
		v.hook = nil
		v.lastToggle = time.Now()
		return nil
	}

	if time.Since(v.lastToggle) < toggleEvery {
		return nil
	}

	v.green = !v.green
	value := "1 0 0 1"
	if v.green {
		value = "0 1 0 1"
	}
	req := sim.MutationRequest{
		VisualName: "box::link::visual",
		Param:      "color",
		Stage:      sim.StageFragment,
		Value:      value,
	}
	v.applied.Store(false)
	v.hook = v.scene.RunBeforeRender(func() {
		if err := v.scene.ApplyMutation(req); err != nil {
			log.Printf("mutation failed: %v", err)
		}
		v.applied.Store(true)
	})
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	src := v.cc.Snapshot().ToImage()

	b := screen.Bounds()
	if v.scaled == nil || v.scaled.Bounds() != b {
		v.scaled = image.NewRGBA(b)
	}
	xdraw.ApproxBiLinear.Scale(v.scaled, b, src, src.Bounds(), xdraw.Src, nil)
	screen.WritePixels(v.scaled.Pix)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("frames: %d", v.cc.Count()))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.cam.Width(), v.cam.Height()
}

func main() {
	var (
		width  = flag.Int("width", 320, "camera width")
		height = flag.Int("height", 240, "camera height")
		rate   = flag.Float64("rate", 30, "camera update rate (Hz)")
	)
	flag.Parse()

	scene := sim.NewScene("viewer")
	defer scene.Close()

	box := scene.AddVisual("box::link::visual",
		sim.NewPose(0, 0, 0, 0, 0, 0), sim.Vec3{X: 1, Y: 1, Z: 1})
	if err := box.Material().SetShaderParam("color", sim.StageFragment, "1 0 0 1"); err != nil {
		log.Fatalf("set color: %v", err)
	}

	cam, err := scene.SpawnCamera("viewer_camera",
		sim.NewPose(0, 0, 0.5, 0, 1.57, 0), *width, *height, *rate)
	if err != nil {
		log.Fatalf("spawn camera: %v", err)
	}

	cc := capture.New(cam.Format(), *width, *height)
	conn := cc.Attach(cam.Frames())
	defer conn.Close()

	v := &viewer{
		scene:      scene,
		cam:        cam,
		cc:         cc,
		lastToggle: time.Now(),
	}

	ebiten.SetWindowSize(*width*2, *height*2)
	ebiten.SetWindowTitle("framerig viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
