// Package runner executes one external detection tool under a deadline
// and folds everything that can go wrong into the invocation's outcome.
// Nothing a child process does - crash, hang, runaway output - escapes as
// an error or disturbs sibling invocations.
package runner

import (
	"context"
	"errors"
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"

	"bytemomo/manta/internal/domain"
)

// DefaultMaxCapture caps each captured stream at 4 MiB; output beyond the
// cap is dropped and the truncation recorded on the invocation.
const DefaultMaxCapture = 4 << 20

// waitDelay bounds how long Wait blocks on lingering pipe readers after
// the context kills a process that leaked its stdio to a child.
const waitDelay = 2 * time.Second

// Runner launches tools. The zero value is not usable; construct with New.
type Runner struct {
	Log        *log.Entry
	MaxCapture int
}

// New creates a Runner with the given logger and the default capture cap.
func New(logger *log.Entry) *Runner {
	return &Runner{Log: logger, MaxCapture: DefaultMaxCapture}
}

// Run executes spec against the input file and returns the finalized
// invocation record. It never returns an error: every fault is an Outcome.
// Multiple Run calls for the same input may proceed concurrently; each
// invocation's buffers belong to its caller alone.
func (r *Runner) Run(ctx context.Context, spec domain.ToolSpec, file string) domain.ToolInvocation {
	inv := domain.ToolInvocation{Spec: spec, Start: time.Now()}

	l := r.Log.WithFields(log.Fields{
		"tool": spec.Name,
		"exec": spec.Executable,
	})

	if err := ctx.Err(); err != nil {
		inv.End = inv.Start
		inv.Outcome = domain.OutcomeCancelled
		return inv
	}

	path, err := exec.LookPath(spec.Executable)
	if err != nil {
		inv.End = time.Now()
		inv.Outcome = domain.OutcomeNotFound
		l.Warn("Executable not found, skipping launch")
		return inv
	}

	tctx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	stdout := newCappedBuffer(r.MaxCapture)
	stderr := newCappedBuffer(r.MaxCapture)

	cmd := exec.CommandContext(tctx, path, spec.CommandLine(file)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	runErr := cmd.Run()
	inv.End = time.Now()
	inv.Stdout = stdout.String()
	inv.Stderr = stderr.String()
	inv.StdoutTruncated = stdout.Truncated()
	inv.StderrTruncated = stderr.Truncated()
	inv.Outcome, inv.ExitCode = classify(tctx, ctx, runErr)

	l.WithFields(log.Fields{
		"outcome":   inv.Outcome,
		"exit_code": inv.ExitCode,
		"duration":  inv.Duration(),
		"truncated": inv.Truncated(),
	}).Info("Tool invocation finished")

	return inv
}

// classify maps the exec error and context states onto the outcome
// taxonomy. Deadline and cancellation are checked before the exit error
// because a killed process also reports an abnormal exit.
func classify(tctx, parent context.Context, runErr error) (domain.Outcome, int) {
	switch {
	case runErr == nil:
		return domain.OutcomeSuccess, 0
	case errors.Is(runErr, exec.ErrWaitDelay):
		// The process itself exited 0; only the pipes were held open
		// past the wait delay by an orphaned child.
		return domain.OutcomeSuccess, 0
	case errors.Is(parent.Err(), context.Canceled):
		return domain.OutcomeCancelled, -1
	case errors.Is(tctx.Err(), context.DeadlineExceeded):
		return domain.OutcomeTimeout, -1
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return domain.OutcomeNonzeroExit, code
		}
		// Negative exit code means the process died on a signal.
		return domain.OutcomeCrash, -1
	}
	// Launch-stage failures (fork/exec errors) after LookPath passed.
	return domain.OutcomeCrash, -1
}
