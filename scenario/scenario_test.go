package scenario

import (
	"context"
	"testing"
	"time"
)

// fastConfig trades the reference resolution for speed: the verdicts do
// not depend on frame size or rate, only on pixel values.
func fastConfig() Config {
	return Config{
		Width:           16,
		Height:          12,
		UpdateRate:      200,
		TargetFrames:    5,
		PollInterval:    2 * time.Millisecond,
		CaptureTimeout:  10 * time.Second,
		MutationTimeout: 10 * time.Second,
		MinShadowRatio:  0.05,
		Renderer:        "software",
	}
}

func TestFlatColor_EndToEnd(t *testing.T) {
	rep := Run(context.Background(), fastConfig(), NewFlatColor())

	if rep.Skipped {
		t.Fatalf("skipped with the software renderer: %s", rep.SkipReason)
	}
	if rep.Failed() {
		t.Fatalf("flat color scenario failed:\n%s", rep)
	}
	if len(rep.Checks) == 0 {
		t.Fatal("scenario recorded no checks")
	}
	for _, c := range rep.Checks {
		if !c.Ok {
			t.Errorf("check %q failed: %s", c.Label, c.Detail)
		}
	}
}

func TestShadow_EndToEnd(t *testing.T) {
	rep := Run(context.Background(), fastConfig(), NewShadow())

	if rep.Skipped {
		t.Fatalf("skipped with the software renderer: %s", rep.SkipReason)
	}
	if rep.Failed() {
		t.Fatalf("shadow scenario failed:\n%s", rep)
	}
}

func TestRunAll_ReportsInArgumentOrder(t *testing.T) {
	reps := RunAll(context.Background(), fastConfig(), NewFlatColor(), NewShadow())

	if len(reps) != 2 {
		t.Fatalf("got %d reports, want 2", len(reps))
	}
	if reps[0].Name != "flat_color" || reps[1].Name != "cast_shadows" {
		t.Errorf("report order = %q, %q, want flat_color, cast_shadows", reps[0].Name, reps[1].Name)
	}
	for _, rep := range reps {
		if rep.Failed() {
			t.Errorf("scenario %s failed:\n%s", rep.Name, rep)
		}
	}
}

func TestScenario_UnknownRendererSkips(t *testing.T) {
	cfg := fastConfig()
	cfg.Renderer = "no-such-renderer"

	rep := Run(context.Background(), cfg, NewFlatColor())
	if !rep.Skipped {
		t.Fatalf("scenario did not skip on a missing renderer:\n%s", rep)
	}
	if rep.Failed() {
		t.Error("skipped scenario counted as failed")
	}
}

// TestScenario_TimeoutIsRecordedNotThrown drives the capture phase into
// a timeout and verifies the run still finishes with a report instead of
// hanging or panicking.
func TestScenario_TimeoutIsRecordedNotThrown(t *testing.T) {
	cfg := fastConfig()
	cfg.UpdateRate = 1 // far too slow to produce TargetFrames in time
	cfg.TargetFrames = 50
	cfg.CaptureTimeout = 100 * time.Millisecond
	cfg.MutationTimeout = 100 * time.Millisecond

	start := time.Now()
	rep := Run(context.Background(), cfg, NewFlatColor())
	elapsed := time.Since(start)

	if !rep.Failed() {
		t.Errorf("starved capture passed:\n%s", rep)
	}
	if rep.Skipped {
		t.Error("timeout reported as a skip")
	}
	// Two captures plus the mutation wait, with slack.
	if elapsed > 30*time.Second {
		t.Errorf("run took %v, want bounded by the configured timeouts", elapsed)
	}

	// Later checks must still have run after the early failure.
	if len(rep.Checks) < 2 {
		t.Errorf("run stopped after the first failed check: %d checks", len(rep.Checks))
	}
}

func TestScenario_Suite(t *testing.T) {
	suite := Suite()
	if len(suite) != 2 {
		t.Fatalf("Suite() has %d scenarios, want 2", len(suite))
	}
	names := map[string]bool{}
	for _, s := range suite {
		names[s.Name()] = true
	}
	if !names["flat_color"] || !names["cast_shadows"] {
		t.Errorf("Suite() names = %v", names)
	}
}

func TestState_Strings(t *testing.T) {
	states := []State{StateIdle, StateSpawning, StateCapturing, StateVerifying,
		StateMutating, StateAwaitingMutation, StateDone, StateFailed}
	seen := map[string]bool{}
	for _, s := range states {
		name := s.String()
		if name == "" || name == "unknown" {
			t.Errorf("State(%d).String() = %q", int(s), name)
		}
		if seen[name] {
			t.Errorf("duplicate state name %q", name)
		}
		seen[name] = true
	}
	if State(99).String() != "unknown" {
		t.Errorf("out-of-range state = %q, want unknown", State(99).String())
	}
}
