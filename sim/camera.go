package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/framerig"
	"github.com/gogpu/framerig/event"
	"github.com/gogpu/framerig/sim/render"
)

// Camera is a frame producer. It owns a render goroutine that, once per
// tick: emits the scene's pre-render signal, composes a frame through
// its renderer, and publishes the frame on its frame signal.
//
// The published frame borrows the camera's working buffer; subscribers
// must copy during the callback and never retain the slice.
type Camera struct {
	scene    *Scene
	renderer render.Renderer

	name     string
	pose     Pose
	format   framerig.Format
	width    int
	height   int
	interval time.Duration

	frames event.FrameSignal
	work   *framerig.FrameBuffer

	frameCount atomic.Uint64
	renderErrs atomic.Uint64

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func newCamera(scene *Scene, r render.Renderer, name string, pose Pose,
	format framerig.Format, width, height int, updateRate float64) *Camera {
	return &Camera{
		scene:    scene,
		renderer: r,
		name:     name,
		pose:     pose,
		format:   format,
		width:    width,
		height:   height,
		interval: time.Duration(float64(time.Second) / updateRate),
		work:     framerig.NewFrameBuffer(format, width, height),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Name returns the camera name.
func (c *Camera) Name() string {
	return c.name
}

// Pose returns the camera pose.
func (c *Camera) Pose() Pose {
	return c.pose
}

// Width returns the frame width in pixels.
func (c *Camera) Width() int {
	return c.width
}

// Height returns the frame height in pixels.
func (c *Camera) Height() int {
	return c.height
}

// Format returns the frame format.
func (c *Camera) Format() framerig.Format {
	return c.format
}

// Frames returns the camera's frame signal. Subscribers receive frames
// emitted after their Connect returns; earlier frames are not
// redelivered.
func (c *Camera) Frames() *event.FrameSignal {
	return &c.frames
}

// FrameCount returns the number of frames composed since spawn.
// Monotonically non-decreasing.
func (c *Camera) FrameCount() uint64 {
	return c.frameCount.Load()
}

// RenderErrors returns the number of ticks whose render failed.
func (c *Camera) RenderErrors() uint64 {
	return c.renderErrs.Load()
}

func (c *Camera) start() {
	go c.loop()
}

// loop is the render goroutine. Everything the renderer and the
// pre-render hooks touch is mutated only here.
func (c *Camera) loop() {
	defer close(c.stopped)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.scene.preRender.Emit()

			view := c.scene.viewOf(c)
			if err := c.renderer.Render(c.work, view); err != nil {
				if c.renderErrs.Add(1) == 1 {
					framerig.Logger().Warn("sim: render failed",
						"camera", c.name, "renderer", c.renderer.Name(), "err", err)
				}
				continue
			}

			c.frames.Emit(framerig.Frame{
				Data:   c.work.Bytes(),
				Width:  c.width,
				Height: c.height,
				Depth:  c.work.Depth(),
				Format: c.format,
			})
			c.frameCount.Add(1)
		}
	}
}

// Close stops the render loop, waits for it to exit, and releases the
// renderer. After Close returns no further frames are emitted.
// Close is idempotent.
func (c *Camera) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		<-c.stopped
		c.renderer.Close()
	})
}
