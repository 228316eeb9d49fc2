package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framerig.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
width = 64
height = 48
update_rate = 30.0
target_frames = 5
poll_interval_ms = 2
capture_timeout_ms = 1000
mutation_timeout_ms = 2000
min_shadow_ratio = 0.1
renderer = "software"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}

	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("resolution = %dx%d, want 64x48", cfg.Width, cfg.Height)
	}
	if cfg.UpdateRate != 30 {
		t.Errorf("UpdateRate = %v, want 30", cfg.UpdateRate)
	}
	if cfg.TargetFrames != 5 {
		t.Errorf("TargetFrames = %d, want 5", cfg.TargetFrames)
	}
	if cfg.PollInterval != 2*time.Millisecond {
		t.Errorf("PollInterval = %v, want 2ms", cfg.PollInterval)
	}
	if cfg.CaptureTimeout != time.Second {
		t.Errorf("CaptureTimeout = %v, want 1s", cfg.CaptureTimeout)
	}
	if cfg.MutationTimeout != 2*time.Second {
		t.Errorf("MutationTimeout = %v, want 2s", cfg.MutationTimeout)
	}
	if cfg.MinShadowRatio != 0.1 {
		t.Errorf("MinShadowRatio = %v, want 0.1", cfg.MinShadowRatio)
	}
	if cfg.Renderer != "software" {
		t.Errorf("Renderer = %q, want software", cfg.Renderer)
	}
}

func TestLoadConfig_AbsentKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `width = 100`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}

	def := DefaultConfig()
	if cfg.Width != 100 {
		t.Errorf("Width = %d, want 100", cfg.Width)
	}
	if cfg.Height != def.Height {
		t.Errorf("Height = %d, want default %d", cfg.Height, def.Height)
	}
	if cfg.CaptureTimeout != def.CaptureTimeout {
		t.Errorf("CaptureTimeout = %v, want default %v", cfg.CaptureTimeout, def.CaptureTimeout)
	}
	if cfg.Renderer != "" {
		t.Errorf("Renderer = %q, want empty", cfg.Renderer)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig succeeded on a missing file")
	}

	bad := writeConfig(t, `width = "not a number`)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig succeeded on malformed TOML")
	}

	invalid := writeConfig(t, `width = -1`)
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("LoadConfig accepted a negative width")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero rate", func(c *Config) { c.UpdateRate = 0 }},
		{"zero frames", func(c *Config) { c.TargetFrames = 0 }},
		{"zero capture timeout", func(c *Config) { c.CaptureTimeout = 0 }},
		{"zero mutation timeout", func(c *Config) { c.MutationTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an unusable config")
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
