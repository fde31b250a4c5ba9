package harness

import "github.com/roach88/hookrt/internal/ir"

// Snapshot is the container HTML after a step. Step 0 is the initial mount.
type Snapshot struct {
	Step  int    `json:"step"`
	Label string `json:"label"`
	HTML  string `json:"html"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when no step failed and every assertion held.
	Pass bool `json:"pass"`

	// Errors holds assertion and step failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Snapshots has one entry per step, plus the initial mount.
	Snapshots []Snapshot `json:"snapshots"`

	// Trace is the full trace of the run, teardown included.
	Trace []ir.TraceEvent `json:"trace"`

	// StoreSize is the number of hook store entries before teardown.
	StoreSize int `json:"store_size"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:      true,
		Errors:    []string{},
		Snapshots: []Snapshot{},
		Trace:     []ir.TraceEvent{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// HTML returns the last snapshot's HTML.
func (r *Result) HTML() string {
	if len(r.Snapshots) == 0 {
		return ""
	}
	return r.Snapshots[len(r.Snapshots)-1].HTML
}
