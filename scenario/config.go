package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the knobs shared by all scenarios. Durations come from
// the file in milliseconds; the defaults mirror the reference camera
// test (320x240 at 10 Hz, 20 frames, 5 s budget).
type Config struct {
	Width        int
	Height       int
	UpdateRate   float64
	TargetFrames int

	PollInterval    time.Duration
	CaptureTimeout  time.Duration
	MutationTimeout time.Duration

	MinShadowRatio float64

	// Renderer selects a registry renderer by name; empty means the
	// registry default.
	Renderer string
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:           320,
		Height:          240,
		UpdateRate:      10,
		TargetFrames:    20,
		PollInterval:    10 * time.Millisecond,
		CaptureTimeout:  5 * time.Second,
		MutationTimeout: 5 * time.Second,
		MinShadowRatio:  0.05,
	}
}

// fileConfig is the TOML wire form of Config.
type fileConfig struct {
	Width        *int     `toml:"width"`
	Height       *int     `toml:"height"`
	UpdateRate   *float64 `toml:"update_rate"`
	TargetFrames *int     `toml:"target_frames"`

	PollIntervalMS    *int64 `toml:"poll_interval_ms"`
	CaptureTimeoutMS  *int64 `toml:"capture_timeout_ms"`
	MutationTimeoutMS *int64 `toml:"mutation_timeout_ms"`

	MinShadowRatio *float64 `toml:"min_shadow_ratio"`
	Renderer       *string  `toml:"renderer"`
}

// LoadConfig reads a TOML config file, applying defaults for absent
// keys.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("scenario: read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("scenario: parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.Width != nil {
		cfg.Width = *fc.Width
	}
	if fc.Height != nil {
		cfg.Height = *fc.Height
	}
	if fc.UpdateRate != nil {
		cfg.UpdateRate = *fc.UpdateRate
	}
	if fc.TargetFrames != nil {
		cfg.TargetFrames = *fc.TargetFrames
	}
	if fc.PollIntervalMS != nil {
		cfg.PollInterval = time.Duration(*fc.PollIntervalMS) * time.Millisecond
	}
	if fc.CaptureTimeoutMS != nil {
		cfg.CaptureTimeout = time.Duration(*fc.CaptureTimeoutMS) * time.Millisecond
	}
	if fc.MutationTimeoutMS != nil {
		cfg.MutationTimeout = time.Duration(*fc.MutationTimeoutMS) * time.Millisecond
	}
	if fc.MinShadowRatio != nil {
		cfg.MinShadowRatio = *fc.MinShadowRatio
	}
	if fc.Renderer != nil {
		cfg.Renderer = *fc.Renderer
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations no scenario could run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("scenario: invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.UpdateRate <= 0 {
		return fmt.Errorf("scenario: invalid update rate %v", c.UpdateRate)
	}
	if c.TargetFrames <= 0 {
		return fmt.Errorf("scenario: invalid target frame count %d", c.TargetFrames)
	}
	if c.CaptureTimeout <= 0 || c.MutationTimeout <= 0 {
		return fmt.Errorf("scenario: timeouts must be positive")
	}
	return nil
}
