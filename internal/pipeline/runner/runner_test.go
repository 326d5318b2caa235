package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"bytemomo/manta/internal/domain"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// stubTool writes an executable shell script into a dir that is prepended
// to PATH for the test, so specs can name it like any real tool.
func stubTool(t *testing.T, name, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func spec(executable string, timeout time.Duration) domain.ToolSpec {
	return domain.ToolSpec{
		Name:       executable,
		Executable: executable,
		Args:       []string{domain.FilePlaceholder},
		Parser:     domain.ParseStrings,
		Timeout:    timeout,
		Required:   true,
	}
}

func TestRunSuccessCapturesStreams(t *testing.T) {
	stubTool(t, "manta-ok", `echo "out line"; echo "err line" >&2; exit 0`)

	r := New(testLogger())
	inv := r.Run(context.Background(), spec("manta-ok", 5*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %q (stderr: %s)", inv.Outcome, inv.Stderr)
	}
	if inv.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", inv.ExitCode)
	}
	if !strings.Contains(inv.Stdout, "out line") {
		t.Errorf("stdout not captured: %q", inv.Stdout)
	}
	if !strings.Contains(inv.Stderr, "err line") {
		t.Errorf("stderr not captured separately: %q", inv.Stderr)
	}
	if inv.Truncated() {
		t.Error("small output should not be marked truncated")
	}
	if inv.End.Before(inv.Start) {
		t.Error("end time before start time")
	}
}

func TestRunSubstitutesFilePath(t *testing.T) {
	stubTool(t, "manta-echoargs", `echo "$@"`)

	r := New(testLogger())
	inv := r.Run(context.Background(), spec("manta-echoargs", 5*time.Second), "/tmp/target.png")

	if !strings.Contains(inv.Stdout, "/tmp/target.png") {
		t.Errorf("file path not passed to tool: %q", inv.Stdout)
	}
}

func TestRunNotFound(t *testing.T) {
	r := New(testLogger())

	start := time.Now()
	inv := r.Run(context.Background(), spec("manta-definitely-not-installed", 30*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeNotFound {
		t.Fatalf("expected not_found, got %q", inv.Outcome)
	}
	// The 30s timeout must not apply when nothing launches.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("not_found took %s, expected an immediate return", elapsed)
	}
	if inv.Stdout != "" {
		t.Error("no output expected when launch is skipped")
	}
}

func TestRunNonzeroExitKeepsOutput(t *testing.T) {
	stubTool(t, "manta-exit3", `echo "partial results"; exit 3`)

	r := New(testLogger())
	inv := r.Run(context.Background(), spec("manta-exit3", 5*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeNonzeroExit {
		t.Fatalf("expected nonzero_exit, got %q", inv.Outcome)
	}
	if inv.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", inv.ExitCode)
	}
	if !strings.Contains(inv.Stdout, "partial results") {
		t.Errorf("salvageable output lost: %q", inv.Stdout)
	}
	if !inv.Parseable() {
		t.Error("nonzero exit must stay parseable for salvage")
	}
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	stubTool(t, "manta-sleepy", `sleep 30`)

	r := New(testLogger())
	start := time.Now()
	inv := r.Run(context.Background(), spec("manta-sleepy", 200*time.Millisecond), "in.png")

	if inv.Outcome != domain.OutcomeTimeout {
		t.Fatalf("expected timeout, got %q", inv.Outcome)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout run took %s, process not killed promptly", elapsed)
	}
	if inv.Parseable() {
		t.Error("timed-out invocation must not reach an adapter")
	}
}

func TestRunSuccessWithLingeringChild(t *testing.T) {
	// The background sleep inherits the stdout pipe and outlives the
	// parent. The parent exited 0, so the invocation is a success even
	// though Wait only unblocks when the wait delay closes the pipes.
	stubTool(t, "manta-orphaner", `echo started; sleep 30 & exit 0`)

	r := New(testLogger())
	inv := r.Run(context.Background(), spec("manta-orphaner", 10*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %q", inv.Outcome)
	}
	if inv.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", inv.ExitCode)
	}
	if !strings.Contains(inv.Stdout, "started") {
		t.Errorf("output written before exit lost: %q", inv.Stdout)
	}
}

func TestRunCrashOnSignal(t *testing.T) {
	stubTool(t, "manta-suicidal", `kill -9 $$`)

	r := New(testLogger())
	inv := r.Run(context.Background(), spec("manta-suicidal", 5*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeCrash {
		t.Fatalf("expected crash, got %q", inv.Outcome)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(testLogger())
	inv := r.Run(ctx, spec("manta-whatever", 5*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeCancelled {
		t.Fatalf("expected cancelled, got %q", inv.Outcome)
	}
}

func TestRunCancelMidFlight(t *testing.T) {
	stubTool(t, "manta-longrun", `sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	r := New(testLogger())
	start := time.Now()
	inv := r.Run(ctx, spec("manta-longrun", time.Minute), "in.png")

	if inv.Outcome != domain.OutcomeCancelled {
		t.Fatalf("expected cancelled, got %q", inv.Outcome)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %s, child not killed promptly", elapsed)
	}
}

func TestRunTruncatesRunawayOutput(t *testing.T) {
	stubTool(t, "manta-noisy", `i=0; while [ $i -lt 1000 ]; do echo "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"; i=$((i+1)); done`)

	r := New(testLogger())
	r.MaxCapture = 1024
	inv := r.Run(context.Background(), spec("manta-noisy", 10*time.Second), "in.png")

	if inv.Outcome != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %q", inv.Outcome)
	}
	if !inv.StdoutTruncated {
		t.Error("expected stdout truncation to be recorded")
	}
	if len(inv.Stdout) > 1024 {
		t.Errorf("capture exceeded cap: %d bytes", len(inv.Stdout))
	}
}

func TestRunIsolatedSiblings(t *testing.T) {
	stubTool(t, "manta-good", `echo ok`)

	r := New(testLogger())

	type result struct{ inv domain.ToolInvocation }
	out := make(chan result, 2)

	go func() {
		out <- result{r.Run(context.Background(), spec("manta-good", 5*time.Second), "in.png")}
	}()
	go func() {
		out <- result{r.Run(context.Background(), spec("manta-missing-tool", 5*time.Second), "in.png")}
	}()

	outcomes := map[domain.Outcome]bool{}
	for i := 0; i < 2; i++ {
		res := <-out
		outcomes[res.inv.Outcome] = true
	}

	if !outcomes[domain.OutcomeSuccess] || !outcomes[domain.OutcomeNotFound] {
		t.Errorf("sibling failure leaked: outcomes %v", outcomes)
	}
}
