package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"bytemomo/manta/internal/adapter/jsonreport"
	"bytemomo/manta/internal/adapter/logger"
	"bytemomo/manta/internal/adapter/yamlconfig"
	"bytemomo/manta/internal/domain"
	"bytemomo/manta/internal/pipeline/classifier"
	"bytemomo/manta/internal/pipeline/runner"
	"bytemomo/manta/internal/registry"
	"bytemomo/manta/internal/usecase"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

var (
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func main() {
	var (
		filePath    = flag.String("file", "", "Path to the media file to analyze (required)")
		toolsFile   = flag.String("tools", "", "Path to tool registry YAML file (optional, defaults compiled in)")
		outDir      = flag.String("out", "", "Directory to save the report JSON (default: print to stdout)")
		jsonLogs    = flag.Bool("json-logs", false, "Emit logs as JSON lines")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("manta media forensics orchestrator v%s (%s)\n", version, commit)
		os.Exit(0)
	}

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Error: --file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger.Setup(level, *jsonLogs, "")

	reg := registry.Default()
	cfg := usecase.DefaultConfig()
	if *toolsFile != "" {
		var err error
		reg, cfg, err = yamlconfig.Load(*toolsFile)
		if err != nil {
			log.WithError(err).Fatal("Failed to load tool registry")
		}
		log.WithField("path", *toolsFile).Info("Loaded tool registry")
	}

	// Ctrl-C cancels the run and kills every child process with it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry := log.NewEntry(log.StandardLogger())
	orch := usecase.NewOrchestrator(
		classifier.NewSignatureClassifier(),
		reg,
		runner.New(entry),
		cfg,
		entry,
	)

	report, err := orch.Analyze(ctx, *filePath)
	if err != nil {
		log.WithError(err).Fatal("Analysis failed")
	}

	printSummary(report)

	if *outDir != "" {
		path, err := jsonreport.New(*outDir).Save(report)
		if err != nil {
			log.WithError(err).Fatal("Failed to save report")
		}
		log.WithField("path", path).Info("Report saved")
	} else {
		if err := jsonreport.Encode(os.Stdout, report); err != nil {
			log.WithError(err).Fatal("Failed to encode report")
		}
	}

	switch report.Status {
	case domain.StatusComplete:
		os.Exit(0)
	case domain.StatusFailed:
		os.Exit(1)
	default: // partial, cancelled
		os.Exit(2)
	}
}

func printSummary(report *domain.Report) {
	fmt.Fprintln(os.Stderr, headerColor("ANALYSIS SUMMARY"))
	fmt.Fprintf(os.Stderr, "File:     %s\n", report.File)
	fmt.Fprintf(os.Stderr, "Media:    %s\n", report.Media)
	fmt.Fprintf(os.Stderr, "Run ID:   %s\n", report.RunID)
	fmt.Fprintf(os.Stderr, "Status:   %s\n", colorStatus(report.Status))
	fmt.Fprintf(os.Stderr, "Findings: %d\n", report.Summary.TotalFindings)

	for _, inv := range report.Invocations {
		mark := successColor("[+]")
		if inv.Outcome != domain.OutcomeSuccess {
			mark = errorColor("[-]")
			if !inv.Required {
				mark = warningColor("[!]")
			}
		}
		fmt.Fprintf(os.Stderr, "  %s %-10s %-12s %s\n", mark, inv.Tool, inv.Outcome, inv.Duration)
	}
}

func colorStatus(s domain.Status) string {
	switch s {
	case domain.StatusComplete:
		return successColor(string(s))
	case domain.StatusPartial, domain.StatusCancelled:
		return warningColor(string(s))
	default:
		return errorColor(string(s))
	}
}
