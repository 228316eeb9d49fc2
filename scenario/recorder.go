package scenario

import (
	"fmt"
	"strings"
	"sync"
)

// Check is one recorded expectation outcome.
type Check struct {
	Label  string
	Ok     bool
	Detail string
}

// Recorder accumulates expectation outcomes for one scenario run.
// Failures are recorded, never thrown; the run continues so later
// independent checks still execute. Recorder is safe for concurrent
// use.
type Recorder struct {
	mu         sync.Mutex
	name       string
	checks     []Check
	skipped    bool
	skipReason string
	aborted    bool
}

// NewRecorder creates a recorder for a named scenario.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// Name returns the scenario name.
func (r *Recorder) Name() string {
	return r.name
}

// Check records an expectation with no extra detail and returns ok
// unchanged, so it can gate dependent steps inline.
func (r *Recorder) Check(ok bool, label string) bool {
	return r.Checkf(ok, label, "")
}

// Checkf records an expectation with a formatted diagnostic detail;
// attach the offending aggregates here (both color sums, the observed
// count). Returns ok unchanged.
func (r *Recorder) Checkf(ok bool, label, format string, args ...any) bool {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	r.mu.Lock()
	r.checks = append(r.checks, Check{Label: label, Ok: ok, Detail: detail})
	r.mu.Unlock()
	return ok
}

// Fatalf records a failed check and marks the scenario aborted.
// Reserved for lookup failures, where subsequent steps have no valid
// target; the caller must stop the scenario's remaining steps.
func (r *Recorder) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.checks = append(r.checks, Check{Label: msg, Ok: false})
	r.aborted = true
	r.mu.Unlock()
}

// Aborted reports whether Fatalf has been called.
func (r *Recorder) Aborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}

// Skipf marks the scenario as a no-op success: the environment lacks a
// prerequisite capability. Explicitly distinct from a failure.
func (r *Recorder) Skipf(format string, args ...any) {
	r.mu.Lock()
	r.skipped = true
	r.skipReason = fmt.Sprintf(format, args...)
	r.mu.Unlock()
}

// Report returns a snapshot of all recorded outcomes.
func (r *Recorder) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep := Report{
		Name:       r.name,
		Checks:     make([]Check, len(r.checks)),
		Skipped:    r.skipped,
		SkipReason: r.skipReason,
		Aborted:    r.aborted,
	}
	copy(rep.Checks, r.checks)
	return rep
}

// Report is the informational aggregate of a scenario run.
type Report struct {
	Name       string
	Checks     []Check
	Skipped    bool
	SkipReason string
	Aborted    bool
}

// Failed reports whether any check failed. A skipped scenario never
// fails.
func (r Report) Failed() bool {
	if r.Skipped {
		return false
	}
	for _, c := range r.Checks {
		if !c.Ok {
			return true
		}
	}
	return false
}

// State returns the terminal state of the run.
func (r Report) State() State {
	if r.Failed() {
		return StateFailed
	}
	return StateDone
}

// String renders the report, one line per check.
func (r Report) String() string {
	var b strings.Builder
	switch {
	case r.Skipped:
		fmt.Fprintf(&b, "%s: SKIP (%s)\n", r.Name, r.SkipReason)
		return b.String()
	case r.Failed():
		fmt.Fprintf(&b, "%s: FAIL\n", r.Name)
	default:
		fmt.Fprintf(&b, "%s: PASS\n", r.Name)
	}
	for _, c := range r.Checks {
		mark := "ok"
		if !c.Ok {
			mark = "FAILED"
		}
		if c.Detail != "" {
			fmt.Fprintf(&b, "  [%s] %s (%s)\n", mark, c.Label, c.Detail)
		} else {
			fmt.Fprintf(&b, "  [%s] %s\n", mark, c.Label)
		}
	}
	if r.Aborted {
		b.WriteString("  aborted: remaining steps skipped\n")
	}
	return b.String()
}
