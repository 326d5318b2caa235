// Package aggregator folds per-tool invocations and their parsed findings
// into the single Report the visualization layer consumes. Presentation
// order always mirrors registry order, whatever order executions finished
// in, so identical tool outputs produce identical reports.
package aggregator

import (
	"time"

	"github.com/google/uuid"

	"bytemomo/manta/internal/domain"
)

// Build assembles the terminal Report for one run. invocations and
// findings are parallel slices in registry order; findings[i] holds the
// adapter output for invocations[i]. Findings from different tools are
// not deduplicated - two tools flagging the same offset both appear, and
// corroboration is the downstream consumer's concern.
func Build(file string, kind domain.MediaKind, invocations []domain.ToolInvocation, findings [][]domain.Finding) domain.Report {
	report := domain.Report{
		RunID:       uuid.New().String(),
		File:        file,
		Media:       kind,
		GeneratedAt: time.Now().UTC(),
		Invocations: make([]domain.InvocationSummary, 0, len(invocations)),
		Findings:    []domain.Finding{},
	}

	byCategory := make(map[domain.Category]int)
	for i, inv := range invocations {
		report.Invocations = append(report.Invocations, domain.InvocationSummary{
			Tool:      inv.Spec.Name,
			Required:  inv.Spec.Required,
			Outcome:   inv.Outcome,
			ExitCode:  inv.ExitCode,
			Duration:  inv.Duration(),
			Truncated: inv.Truncated(),
		})
		if i < len(findings) {
			for _, f := range findings[i] {
				report.Findings = append(report.Findings, f)
				byCategory[f.Category]++
			}
		}
	}

	report.Status = status(invocations)
	report.Summary = summarize(invocations, report.Findings, byCategory)
	return report
}

// status computes the overall run status from the invocation outcomes.
// Only a clean exit counts as success; optional-tool failures never
// downgrade the status. An empty invocation list (unknown media, or a
// kind whose tool set was swapped to empty) is a failed analysis.
func status(invocations []domain.ToolInvocation) domain.Status {
	if len(invocations) == 0 {
		return domain.StatusFailed
	}

	var requiredTotal, requiredOK int
	for _, inv := range invocations {
		if inv.Outcome == domain.OutcomeCancelled {
			return domain.StatusCancelled
		}
		if !inv.Spec.Required {
			continue
		}
		requiredTotal++
		if inv.Succeeded() {
			requiredOK++
		}
	}

	switch {
	case requiredTotal == 0 || requiredOK == requiredTotal:
		return domain.StatusComplete
	case requiredOK == 0:
		return domain.StatusFailed
	default:
		return domain.StatusPartial
	}
}

func summarize(invocations []domain.ToolInvocation, findings []domain.Finding, byCategory map[domain.Category]int) domain.Summary {
	s := domain.Summary{
		ToolsRun:      len(invocations),
		TotalFindings: len(findings),
	}
	for _, inv := range invocations {
		if inv.Succeeded() {
			s.ToolsSucceeded++
		} else {
			s.ToolsFailed++
		}
	}
	if len(byCategory) > 0 {
		s.ByCategory = byCategory
	}
	return s
}
