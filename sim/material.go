package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/naga"
)

// ShaderStage distinguishes which shader stage a parameter belongs to.
type ShaderStage string

// Recognized shader stages.
const (
	StageFragment ShaderStage = "fragment"
	StageVertex   ShaderStage = "vertex"
)

// Material errors.
var (
	// ErrUnknownStage is returned for a stage other than "fragment" or
	// "vertex".
	ErrUnknownStage = errors.New("sim: unknown shader stage")

	// ErrBadParamValue is returned when a parameter value does not
	// parse as space-separated numeric components.
	ErrBadParamValue = errors.New("sim: bad shader parameter value")
)

// DefaultShader is the WGSL source materials carry by default. It
// exposes the "color" uniform the verification scenarios mutate.
const DefaultShader = `
struct ShaderParams {
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> params: ShaderParams;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return params.color;
}
`

// Material is a visual's surface description: a flat base color driven
// by the "color" shader parameter, plus arbitrary named parameters.
//
// Parameter values use the renderer encoding: space-separated numeric
// components, e.g. "0 1 0 1" for an opaque green vec4.
//
// Parameters are meant to be mutated only from a render goroutine (via
// Scene.RunBeforeRender); the internal lock exists because a scene may
// drive several cameras, each with its own render goroutine reading the
// material.
type Material struct {
	mu      sync.RWMutex
	color   [4]float32
	shaders map[ShaderStage]string
	params  map[string][]float32
}

// NewMaterial creates a material with the given base color and the
// default shader for both stages.
func NewMaterial(r, g, b, a float32) *Material {
	return &Material{
		color: [4]float32{r, g, b, a},
		shaders: map[ShaderStage]string{
			StageFragment: DefaultShader,
			StageVertex:   DefaultShader,
		},
		params: make(map[string][]float32),
	}
}

// Color returns the current base color.
func (m *Material) Color() [4]float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

// SetShader replaces the WGSL source for a stage. The source is
// validated with naga before it is accepted.
func (m *Material) SetShader(stage ShaderStage, source string) error {
	if stage != StageFragment && stage != StageVertex {
		return fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("sim: shader does not compile: %w", err)
	}
	m.mu.Lock()
	m.shaders[stage] = source
	m.mu.Unlock()
	return nil
}

// Shader returns the WGSL source for a stage.
func (m *Material) Shader(stage ShaderStage) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.shaders[stage]
	return src, ok
}

// SetShaderParam sets a named parameter from its text encoding. Setting
// "color" updates the base color the renderer uses (a missing fourth
// component defaults alpha to 1).
func (m *Material) SetShaderParam(name string, stage ShaderStage, value string) error {
	if stage != StageFragment && stage != StageVertex {
		return fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty value for %q", ErrBadParamValue, name)
	}
	comps := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return fmt.Errorf("%w: %q component %d: %v", ErrBadParamValue, name, i, err)
		}
		comps[i] = float32(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.params[name] = comps
	if name == "color" && len(comps) >= 3 {
		copy(m.color[:3], comps[:3])
		if len(comps) >= 4 {
			m.color[3] = comps[3]
		} else {
			m.color[3] = 1
		}
	}
	return nil
}

// Param returns a copy of a named parameter's components.
func (m *Material) Param(name string) ([]float32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	comps, ok := m.params[name]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(comps))
	copy(out, comps)
	return out, true
}
