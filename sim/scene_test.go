package sim

import (
	"errors"
	"testing"
)

func TestScene_VisualLookup(t *testing.T) {
	s := NewScene("lookup")
	s.AddVisual("box::link::visual", NewPose(0, 0, 0, 0, 0, 0), Vec3{X: 1, Y: 1, Z: 1})

	v, err := s.VisualByName("box::link::visual")
	if err != nil {
		t.Fatalf("VisualByName error = %v", err)
	}
	if v.Name() != "box::link::visual" {
		t.Errorf("Name() = %q", v.Name())
	}

	if _, err := s.VisualByName("missing"); !errors.Is(err, ErrVisualNotFound) {
		t.Errorf("error = %v, want ErrVisualNotFound", err)
	}
}

func TestScene_CameraLookup(t *testing.T) {
	s := NewScene("lookup")
	defer s.Close()
	s.UseRenderer("software")

	cam, err := s.SpawnCamera("cam", NewPose(0, 0, 1, 0, 0, 0), 4, 4, 100)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}

	got, err := s.CameraByIndex(0)
	if err != nil {
		t.Fatalf("CameraByIndex(0) error = %v", err)
	}
	if got != cam {
		t.Error("CameraByIndex(0) returned a different camera")
	}
	if s.CameraCount() != 1 {
		t.Errorf("CameraCount() = %d, want 1", s.CameraCount())
	}

	for _, i := range []int{-1, 1} {
		if _, err := s.CameraByIndex(i); !errors.Is(err, ErrCameraNotFound) {
			t.Errorf("CameraByIndex(%d) error = %v, want ErrCameraNotFound", i, err)
		}
	}
}

func TestScene_AddVisualReplaces(t *testing.T) {
	s := NewScene("replace")
	s.AddVisual("v", NewPose(0, 0, 0, 0, 0, 0), Vec3{X: 1, Y: 1, Z: 1})
	v2 := s.AddVisual("v", NewPose(1, 0, 0, 0, 0, 0), Vec3{X: 2, Y: 2, Z: 2})

	got, err := s.VisualByName("v")
	if err != nil {
		t.Fatalf("VisualByName error = %v", err)
	}
	if got != v2 {
		t.Error("lookup returned the replaced visual")
	}
	if len(s.visuals) != 1 {
		t.Errorf("visuals list has %d entries after replace, want 1", len(s.visuals))
	}
}

func TestScene_SpawnCameraValidation(t *testing.T) {
	s := NewScene("validate")
	defer s.Close()
	s.UseRenderer("software")

	if _, err := s.SpawnCamera("bad", NewPose(0, 0, 0, 0, 0, 0), 0, 4, 10); err == nil {
		t.Error("SpawnCamera accepted zero width")
	}
	if _, err := s.SpawnCamera("bad", NewPose(0, 0, 0, 0, 0, 0), 4, 4, 0); err == nil {
		t.Error("SpawnCamera accepted zero update rate")
	}
	if _, err := s.SpawnCamera("bad", NewPose(0, 0, 0, 0, 0, 0), 4, 4, 10); err != nil {
		t.Errorf("valid SpawnCamera failed: %v", err)
	}
}

func TestScene_SpawnCameraUnknownRenderer(t *testing.T) {
	s := NewScene("unknown")
	s.UseRenderer("no-such-renderer")

	if _, err := s.SpawnCamera("cam", NewPose(0, 0, 0, 0, 0, 0), 4, 4, 10); err == nil {
		t.Error("SpawnCamera succeeded with an unregistered renderer name")
	}
}

func TestScene_ViewOfNearestVisual(t *testing.T) {
	s := NewScene("view")
	s.UseRenderer("software")
	defer s.Close()

	near := s.AddVisual("near", NewPose(0, 0, 0, 0, 0, 0), Vec3{X: 1, Y: 1, Z: 1})
	far := s.AddVisual("far", NewPose(0, 5, 0, 0, 0, 0), Vec3{X: 1, Y: 1, Z: 1})
	near.Material().SetShaderParam("color", StageFragment, "1 0 0 1")
	far.Material().SetShaderParam("color", StageFragment, "0 0 1 1")

	cam, err := s.SpawnCamera("cam", NewPose(0, 0, 0.5, 0, 1.57, 0), 2, 2, 1000)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}

	view := s.viewOf(cam)
	if view.Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("view color = %v, want the nearer visual's red", view.Color)
	}
	if view.Illumination != 1 {
		t.Errorf("illumination = %v, want 1 with no occluders", view.Illumination)
	}
}

func TestScene_ViewOfShadowAttenuation(t *testing.T) {
	s := NewScene("shadow")
	s.UseRenderer("software")
	defer s.Close()

	s.AddVisual("ground", NewPose(0, 0, 0, 0, 0, 0), Vec3{X: 100, Y: 100, Z: 0.1})
	roof := s.AddVisual("roof", NewPose(0, 0, 2, 0, 0, 0), Vec3{X: 2, Y: 2, Z: 0.1})
	roof.SetCastShadows(true)

	shaded, err := s.SpawnCamera("shaded", NewPose(0, 0, 0.5, 0, 1.57, 0), 2, 2, 1000)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}
	open, err := s.SpawnCamera("open", NewPose(0, 10, 0.5, 0, 1.57, 0), 2, 2, 1000)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}

	sv := s.viewOf(shaded)
	ov := s.viewOf(open)

	if ov.Illumination != 1 {
		t.Errorf("open camera illumination = %v, want 1", ov.Illumination)
	}
	want := float32(1 - defaultShadowAttenuation)
	if sv.Illumination != want {
		t.Errorf("shaded camera illumination = %v, want %v", sv.Illumination, want)
	}
	if sv.Color != ov.Color {
		t.Errorf("cameras see different surfaces: %v vs %v", sv.Color, ov.Color)
	}
}

func TestScene_ViewOfIgnoresNonCastingOccluder(t *testing.T) {
	s := NewScene("no-shadow")
	s.UseRenderer("software")
	defer s.Close()

	s.AddVisual("ground", NewPose(0, 0, 0, 0, 0, 0), Vec3{X: 100, Y: 100, Z: 0.1})
	// Overhead but with shadow casting left off.
	s.AddVisual("roof", NewPose(0, 0, 2, 0, 0, 0), Vec3{X: 2, Y: 2, Z: 0.1})

	cam, err := s.SpawnCamera("cam", NewPose(0, 0, 0.5, 0, 1.57, 0), 2, 2, 1000)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}

	if v := s.viewOf(cam); v.Illumination != 1 {
		t.Errorf("illumination = %v under a non-casting occluder, want 1", v.Illumination)
	}
}

func TestScene_ViewOfEmptyScene(t *testing.T) {
	s := NewScene("empty")
	s.UseRenderer("software")
	defer s.Close()

	cam, err := s.SpawnCamera("cam", NewPose(0, 0, 0.5, 0, 1.57, 0), 2, 2, 1000)
	if err != nil {
		t.Fatalf("SpawnCamera error = %v", err)
	}

	v := s.viewOf(cam)
	if v.Color != [4]float32{} {
		t.Errorf("color = %v with no visuals, want zero", v.Color)
	}
}
