// Package usecase wires the analysis pipeline together: classify the
// input, look up the tool set for its format, run every tool in parallel,
// adapt the raw outputs, and aggregate one report.
package usecase

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"bytemomo/manta/internal/domain"
	"bytemomo/manta/internal/parse"
	"bytemomo/manta/internal/pipeline/aggregator"
	"bytemomo/manta/internal/pipeline/classifier"
	"bytemomo/manta/internal/registry"
)

// ToolRunner executes one tool invocation. Implementations must be safe
// for concurrent use; the orchestrator calls Run from one goroutine per
// selected tool.
type ToolRunner interface {
	Run(ctx context.Context, spec domain.ToolSpec, file string) domain.ToolInvocation
}

// Config carries the orchestrator's runtime knobs.
type Config struct {
	// MaxParallelTools bounds concurrent tool processes per run.
	// Values below 1 are treated as 1.
	MaxParallelTools int `yaml:"max_parallel_tools" json:"max_parallel_tools"`
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{MaxParallelTools: 4}
}

// Orchestrator drives one analysis run end to end. It holds only
// immutable collaborators, so concurrent Analyze calls are independent:
// no state is shared between runs and none survives them.
type Orchestrator struct {
	classifier classifier.Classifier
	registry   *registry.Registry
	runner     ToolRunner
	config     Config
	log        *log.Entry
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(c classifier.Classifier, reg *registry.Registry, r ToolRunner, cfg Config, logger *log.Entry) *Orchestrator {
	return &Orchestrator{
		classifier: c,
		registry:   reg,
		runner:     r,
		config:     cfg,
		log:        logger,
	}
}

// Analyze runs the full pipeline against one input file. Per-tool faults
// are absorbed into the report; the error return is reserved for
// orchestration-internal defects and for nothing the analyzed file or
// the tools can cause.
func (o *Orchestrator) Analyze(ctx context.Context, file string) (*domain.Report, error) {
	kind := o.classifier.Classify(file)
	specs := o.registry.ToolsFor(kind)

	l := o.log.WithFields(log.Fields{
		"file":  file,
		"media": kind,
		"tools": len(specs),
	})
	l.Info("Starting analysis run")

	if len(specs) == 0 {
		l.Warn("No tools registered for media kind")
		report := aggregator.Build(file, kind, nil, nil)
		return &report, nil
	}

	invocations := o.dispatch(ctx, specs, file)

	findings := make([][]domain.Finding, len(invocations))
	for i, inv := range invocations {
		findings[i] = parse.Extract(inv)
	}

	report := aggregator.Build(file, kind, invocations, findings)
	l.WithFields(log.Fields{
		"status":   report.Status,
		"findings": len(report.Findings),
	}).Info("Analysis run finished")

	return &report, nil
}

// dispatch fans the selected tools out over a bounded set of goroutines
// and blocks until all of them have finished, timed out, or been
// cancelled. Results land at the index of their spec, so the slice comes
// back in registry order regardless of completion order.
func (o *Orchestrator) dispatch(ctx context.Context, specs []domain.ToolSpec, file string) []domain.ToolInvocation {
	invocations := make([]domain.ToolInvocation, len(specs))

	parallel := o.config.MaxParallelTools
	if parallel < 1 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)

	var wg sync.WaitGroup
	for i, spec := range specs {
		i, spec := i, spec
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			invocations[i] = o.runner.Run(ctx, spec, file)
		}()
	}
	wg.Wait()

	return invocations
}
