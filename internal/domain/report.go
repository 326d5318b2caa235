package domain

import "time"

// Status is the overall outcome of one analysis run.
type Status string

const (
	// StatusComplete means every required tool succeeded.
	StatusComplete Status = "complete"
	// StatusPartial means at least one required tool failed and at least
	// one succeeded.
	StatusPartial Status = "partial"
	// StatusFailed means every required tool failed, or no tools were
	// selected at all.
	StatusFailed Status = "failed"
	// StatusCancelled means the run was cancelled before completion.
	StatusCancelled Status = "cancelled"
)

// InvocationSummary is the per-tool execution record carried on a Report.
// It is the self-describing subset of ToolInvocation the visualization
// layer needs; raw captured output stays behind with the run.
type InvocationSummary struct {
	Tool      string        `json:"tool"`
	Required  bool          `json:"required"`
	Outcome   Outcome       `json:"outcome"`
	ExitCode  int           `json:"exit_code"`
	Duration  time.Duration `json:"duration"`
	Truncated bool          `json:"truncated,omitempty"`
}

// Summary is the headline view of a Report.
type Summary struct {
	ToolsRun       int              `json:"tools_run"`
	ToolsSucceeded int              `json:"tools_succeeded"`
	ToolsFailed    int              `json:"tools_failed"`
	TotalFindings  int              `json:"total_findings"`
	ByCategory     map[Category]int `json:"by_category,omitempty"`
}

// Report is the terminal artifact of one analysis run. Invocations mirror
// the registry order for the media kind, independent of completion order,
// and findings keep insertion order per tool with tools in registry order.
// A Report is immutable once returned.
type Report struct {
	RunID       string              `json:"run_id"`
	File        string              `json:"file"`
	Media       MediaKind           `json:"media"`
	GeneratedAt time.Time           `json:"generated_at"`
	Invocations []InvocationSummary `json:"invocations"`
	Findings    []Finding           `json:"findings"`
	Status      Status              `json:"status"`
	Summary     Summary             `json:"summary"`
}
