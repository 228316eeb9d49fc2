package scenario

import (
	"context"

	"github.com/gogpu/framerig"
	"github.com/gogpu/framerig/sim/render"
	"golang.org/x/sync/errgroup"
)

// State is a phase of the scenario state machine.
type State int

// Scenario states, in nominal order.
const (
	StateIdle State = iota
	StateSpawning
	StateCapturing
	StateVerifying
	StateMutating
	StateAwaitingMutation
	StateDone
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpawning:
		return "spawning"
	case StateCapturing:
		return "capturing"
	case StateVerifying:
		return "verifying"
	case StateMutating:
		return "mutating"
	case StateAwaitingMutation:
		return "awaiting_mutation"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Scenario is one orchestrated capture-and-verify run. Run records all
// outcomes on the recorder and returns when the scenario is finished,
// skipped, or aborted.
type Scenario interface {
	Name() string
	Run(ctx context.Context, cfg Config, r *Recorder)
}

// machine tracks the current state of a running scenario and logs
// transitions. Embedded by the concrete scenarios.
type machine struct {
	name  string
	state State
}

func (m *machine) to(s State) {
	m.state = s
	framerig.Logger().Debug("scenario: state", "scenario", m.name, "state", s.String())
}

// pickRenderer resolves the configured renderer and reports whether the
// environment can run the scenario at all. A nil renderer with ok=true
// never happens; ok=false means skip.
func pickRenderer(cfg Config, r *Recorder) bool {
	if cfg.Renderer == "" {
		if render.Default() == nil {
			r.Skipf("no renderer registered")
			return false
		}
		return true
	}
	if render.Get(cfg.Renderer) == nil {
		r.Skipf("renderer %q not registered (available: %v)", cfg.Renderer, render.Available())
		return false
	}
	return true
}

// Run executes a single scenario and returns its report.
func Run(ctx context.Context, cfg Config, s Scenario) Report {
	r := NewRecorder(s.Name())
	s.Run(ctx, cfg, r)
	rep := r.Report()
	framerig.Logger().Info("scenario: finished",
		"scenario", s.Name(), "state", rep.State().String(),
		"checks", len(rep.Checks), "skipped", rep.Skipped)
	return rep
}

// RunAll executes scenarios in parallel and returns their reports in
// argument order. Each scenario owns its scene, buffers, and counters,
// so runs cannot interfere. A failed scenario is a recorded outcome,
// not an error; the group only propagates context cancellation.
func RunAll(ctx context.Context, cfg Config, scenarios ...Scenario) []Report {
	reports := make([]Report, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range scenarios {
		g.Go(func() error {
			reports[i] = Run(ctx, cfg, s)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// Suite returns the built-in verification scenarios.
func Suite() []Scenario {
	return []Scenario{
		NewFlatColor(),
		NewShadow(),
	}
}
