package domain

import "time"

// Outcome is the terminal state of one execution attempt. Per-tool faults
// are recorded here as data and never travel as errors past the runner.
type Outcome string

const (
	// OutcomeSuccess means the process exited 0 within its deadline.
	OutcomeSuccess Outcome = "success"
	// OutcomeNonzeroExit means the process terminated normally with a
	// nonzero exit code. Captured output is kept for salvage parsing.
	OutcomeNonzeroExit Outcome = "nonzero_exit"
	// OutcomeTimeout means the per-spec deadline expired and the process
	// was killed.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeNotFound means the executable is absent from PATH; no
	// process was launched.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeCrash means the process died abnormally (signal or launch
	// failure).
	OutcomeCrash Outcome = "crash"
	// OutcomeCancelled means the whole run was cancelled while this
	// invocation was pending or in flight.
	OutcomeCancelled Outcome = "cancelled"
)

// ToolInvocation is the recorded result of one execution attempt. It is
// owned exclusively by the run that created it and treated as immutable
// once handed to the aggregator.
type ToolInvocation struct {
	Spec            ToolSpec  `json:"spec"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	ExitCode        int       `json:"exit_code"`
	Stdout          string    `json:"stdout,omitempty"`
	Stderr          string    `json:"stderr,omitempty"`
	StdoutTruncated bool      `json:"stdout_truncated,omitempty"`
	StderrTruncated bool      `json:"stderr_truncated,omitempty"`
	Outcome         Outcome   `json:"outcome"`
}

// Duration is the wall-clock time of the attempt.
func (inv ToolInvocation) Duration() time.Duration {
	return inv.End.Sub(inv.Start)
}

// Succeeded reports whether the invocation counts as a success for report
// status purposes. Only a clean exit qualifies; a salvageable nonzero exit
// is still a failed invocation.
func (inv ToolInvocation) Succeeded() bool {
	return inv.Outcome == OutcomeSuccess
}

// Parseable reports whether an output adapter should see this invocation.
// Nonzero exits are included because several of the wrapped tools exit 1
// while still printing usable output.
func (inv ToolInvocation) Parseable() bool {
	return inv.Outcome == OutcomeSuccess || inv.Outcome == OutcomeNonzeroExit
}

// Truncated reports whether either captured stream hit the capture cap.
func (inv ToolInvocation) Truncated() bool {
	return inv.StdoutTruncated || inv.StderrTruncated
}
