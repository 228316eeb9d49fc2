package sim

import (
	"errors"
	"testing"
)

func TestMaterial_SetShaderParamColor(t *testing.T) {
	m := NewMaterial(1, 0, 0, 1)

	if err := m.SetShaderParam("color", StageFragment, "0 1 0 1"); err != nil {
		t.Fatalf("SetShaderParam error = %v", err)
	}

	want := [4]float32{0, 1, 0, 1}
	if got := m.Color(); got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestMaterial_ColorAlphaDefaultsToOne(t *testing.T) {
	m := NewMaterial(0, 0, 0, 0)
	if err := m.SetShaderParam("color", StageFragment, "0.5 0.25 1"); err != nil {
		t.Fatalf("SetShaderParam error = %v", err)
	}
	got := m.Color()
	if got[3] != 1 {
		t.Errorf("alpha = %v, want 1 when omitted", got[3])
	}
	if got[0] != 0.5 || got[1] != 0.25 || got[2] != 1 {
		t.Errorf("rgb = %v, want (0.5, 0.25, 1)", got)
	}
}

func TestMaterial_SetShaderParamStoresComponents(t *testing.T) {
	m := NewMaterial(1, 1, 1, 1)
	if err := m.SetShaderParam("time_scale", StageVertex, "2.5"); err != nil {
		t.Fatalf("SetShaderParam error = %v", err)
	}

	comps, ok := m.Param("time_scale")
	if !ok {
		t.Fatal("Param(time_scale) not found after set")
	}
	if len(comps) != 1 || comps[0] != 2.5 {
		t.Errorf("components = %v, want [2.5]", comps)
	}

	// Non-color params leave the base color untouched.
	if got := m.Color(); got != [4]float32{1, 1, 1, 1} {
		t.Errorf("Color() = %v changed by unrelated param", got)
	}
}

func TestMaterial_SetShaderParamUnknownStage(t *testing.T) {
	m := NewMaterial(1, 1, 1, 1)
	err := m.SetShaderParam("color", ShaderStage("geometry"), "0 1 0 1")
	if !errors.Is(err, ErrUnknownStage) {
		t.Errorf("error = %v, want ErrUnknownStage", err)
	}
}

func TestMaterial_SetShaderParamBadValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"non numeric", "0 green 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(1, 1, 1, 1)
			err := m.SetShaderParam("color", StageFragment, tt.value)
			if !errors.Is(err, ErrBadParamValue) {
				t.Errorf("error = %v, want ErrBadParamValue", err)
			}
			// A rejected value must not partially apply.
			if got := m.Color(); got != [4]float32{1, 1, 1, 1} {
				t.Errorf("Color() = %v after rejected value", got)
			}
		})
	}
}

func TestMaterial_SetShaderValidatesSource(t *testing.T) {
	m := NewMaterial(1, 1, 1, 1)

	if err := m.SetShader(StageFragment, DefaultShader); err != nil {
		t.Errorf("SetShader(DefaultShader) = %v, want nil", err)
	}

	if err := m.SetShader(StageFragment, "this is not wgsl {"); err == nil {
		t.Error("SetShader accepted garbage source")
	}

	if err := m.SetShader(ShaderStage("compute"), DefaultShader); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("error = %v, want ErrUnknownStage", err)
	}

	// The rejected source must not replace the stored one.
	src, ok := m.Shader(StageFragment)
	if !ok || src != DefaultShader {
		t.Error("stored shader changed by rejected source")
	}
}
