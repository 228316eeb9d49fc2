package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/framerig"
	"github.com/gogpu/framerig/event"
	"github.com/gogpu/framerig/sim/render"
)

// Lookup errors. A failed lookup is fatal to the scenario that made it:
// subsequent steps have no valid target.
var (
	ErrVisualNotFound = errors.New("sim: visual not found")
	ErrCameraNotFound = errors.New("sim: camera not found")
)

// defaultShadowAttenuation is the fraction of light an occluder removes.
const defaultShadowAttenuation = 0.55

// Scene is a simulated world: visuals, cameras, and the pre-render hook
// point. Topology (adding visuals, spawning cameras) is set up from the
// control goroutine; per-frame state flows only through the render
// goroutines.
type Scene struct {
	name string

	mu      sync.RWMutex
	visuals []*Visual
	byName  map[string]*Visual
	cameras []*Camera

	preRender event.Signal

	format            framerig.Format
	rendererName      string
	shadowAttenuation float32
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{
		name:              name,
		byName:            make(map[string]*Visual),
		format:            framerig.RGB8,
		shadowAttenuation: defaultShadowAttenuation,
	}
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.name
}

// SetFormat selects the frame format for subsequently spawned cameras.
// The default is RGB8, which the software renderer supports; the native
// renderer requires RGBA8.
func (s *Scene) SetFormat(f framerig.Format) {
	s.mu.Lock()
	s.format = f
	s.mu.Unlock()
}

// UseRenderer selects the renderer, by registry name, for subsequently
// spawned cameras. An empty name selects the registry default.
func (s *Scene) UseRenderer(name string) {
	s.mu.Lock()
	s.rendererName = name
	s.mu.Unlock()
}

// SetShadowAttenuation sets the fraction of light removed per occluder,
// in [0,1]. Call during scene setup.
func (s *Scene) SetShadowAttenuation(f float32) {
	s.mu.Lock()
	s.shadowAttenuation = f
	s.mu.Unlock()
}

// AddVisual adds a named visual and returns it for material setup.
// Re-adding a name replaces the previous visual.
func (s *Scene) AddVisual(name string, pose Pose, size Vec3) *Visual {
	v := newVisual(name, pose, size)
	s.mu.Lock()
	if old, ok := s.byName[name]; ok {
		for i, ov := range s.visuals {
			if ov == old {
				s.visuals = append(s.visuals[:i], s.visuals[i+1:]...)
				break
			}
		}
	}
	s.visuals = append(s.visuals, v)
	s.byName[name] = v
	s.mu.Unlock()
	return v
}

// VisualByName resolves a named visual. Absence is a hard lookup
// failure.
func (s *Scene) VisualByName(name string) (*Visual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in scene %q", ErrVisualNotFound, name, s.name)
	}
	return v, nil
}

// CameraByIndex resolves a camera by spawn order. Absence is a hard
// lookup failure.
func (s *Scene) CameraByIndex(i int) (*Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.cameras) {
		return nil, fmt.Errorf("%w: index %d of %d in scene %q",
			ErrCameraNotFound, i, len(s.cameras), s.name)
	}
	return s.cameras[i], nil
}

// CameraCount returns the number of spawned cameras.
func (s *Scene) CameraCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cameras)
}

// RunBeforeRender registers fn to run on a render goroutine at the
// defined point before frame composition. This is the only sanctioned
// way to mutate renderer-owned state from control code.
//
// The connection fires on every pre-render pass of every camera in
// the scene until it is closed. A one-shot hook must be disconnected
// by its caller as soon as its effect is observed, or it re-runs on
// every subsequent pass. That hazard is inherited behavior, not a
// defect: callers may rely on multi-fire for repeated mutations.
func (s *Scene) RunBeforeRender(fn func()) *event.Connection {
	return s.preRender.Connect(fn)
}

// SpawnCamera creates a camera at the given pose and starts its render
// loop. updateRate is in frames per second.
func (s *Scene) SpawnCamera(name string, pose Pose, width, height int, updateRate float64) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sim: camera %q: invalid resolution %dx%d", name, width, height)
	}
	if updateRate <= 0 {
		return nil, fmt.Errorf("sim: camera %q: invalid update rate %v", name, updateRate)
	}

	s.mu.RLock()
	rendererName := s.rendererName
	format := s.format
	s.mu.RUnlock()

	var r render.Renderer
	if rendererName == "" {
		// Walk the priority order; a renderer whose capability probe
		// fails (native without a GPU) is skipped, not an error.
		var err error
		r, err = render.InitDefault()
		if err != nil {
			return nil, fmt.Errorf("sim: camera %q: %w", name, err)
		}
	} else {
		r = render.Get(rendererName)
		if r == nil {
			return nil, fmt.Errorf("sim: camera %q: %w", name, render.ErrNotAvailable)
		}
		if err := r.Init(); err != nil {
			r.Close()
			return nil, fmt.Errorf("sim: camera %q: renderer init: %w", name, err)
		}
	}

	cam := newCamera(s, r, name, pose, format, width, height, updateRate)

	s.mu.Lock()
	s.cameras = append(s.cameras, cam)
	s.mu.Unlock()

	framerig.Logger().Info("sim: camera spawned",
		"scene", s.name, "camera", name, "renderer", r.Name(),
		"width", width, "height", height, "rate_hz", updateRate)

	cam.start()
	return cam, nil
}

// Close stops all cameras and waits for their render loops to exit.
func (s *Scene) Close() {
	s.mu.RLock()
	cams := make([]*Camera, len(s.cameras))
	copy(cams, s.cameras)
	s.mu.RUnlock()

	for _, c := range cams {
		c.Close()
	}
}

// viewOf resolves what cam currently sees. Runs on cam's render
// goroutine.
//
// The model is deliberately simple: the camera sees the nearest visual
// at or below its own height, lit by full illumination minus one
// attenuation step per shadow-casting visual hanging over the camera's
// position. It is a stand-in for a scene graph, deterministic by
// construction.
func (s *Scene) viewOf(cam *Camera) render.View {
	s.mu.RLock()
	visuals := s.visuals
	attenuation := s.shadowAttenuation
	s.mu.RUnlock()

	view := render.View{Illumination: 1}

	var target *Visual
	var best float32
	for _, v := range visuals {
		if v.pose.Pos.Z > cam.pose.Pos.Z {
			// Overhead geometry is out of view; it can only occlude.
			if v.castShadows && v.pose.Pos.DistanceXY(cam.pose.Pos) <= v.footprint() {
				view.Illumination *= 1 - attenuation
			}
			continue
		}
		d := v.pose.Pos.Sub(cam.pose.Pos).Length()
		if target == nil || d < best {
			target = v
			best = d
		}
	}

	if target != nil {
		view.Color = target.material.Color()
	}
	return view
}
