// Package jsonreport serializes a finished Report for the visualization
// layer. The JSON shape is the report's wire contract; nothing in it
// points back into raw tool output.
package jsonreport

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"bytemomo/manta/internal/domain"
)

type Writer struct {
	OutDir string // e.g., ./output
}

func New(out string) *Writer { return &Writer{OutDir: out} }

// Save writes the report to <outdir>/reports/<run-id>.json and returns
// the path.
func (w *Writer) Save(report *domain.Report) (string, error) {
	dir := filepath.Join(w.OutDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, report.RunID+".json")
	return path, writeJSON(path, report)
}

// Encode streams the report to an arbitrary writer, for callers that
// print to stdout instead of the output directory.
func Encode(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
