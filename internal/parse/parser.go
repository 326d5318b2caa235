// Package parse holds one output adapter per external tool. Each adapter
// translates a tool's raw text output into normalized findings and is
// tolerant of partial or garbled input: lines it cannot understand are
// skipped, and an empty result is a valid result, not an error. Adapters
// never look at another tool's output.
package parse

import (
	"bufio"
	"strings"

	"bytemomo/manta/internal/domain"
)

// scanLines returns a line scanner over a captured stream. The token
// limit is raised to the input size because bufio's 64 KiB default is
// smaller than the runner's capture cap: one over-long line would stop
// the scan and drop every finding after it instead of being skipped.
func scanLines(s string) *bufio.Scanner {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(nil, len(s)+1)
	return sc
}

// Parser converts one ToolInvocation's captured output into findings.
type Parser interface {
	ID() domain.ParserID
	Parse(inv domain.ToolInvocation) []domain.Finding
}

var parsers = map[domain.ParserID]Parser{
	domain.ParseZsteg:    zstegParser{},
	domain.ParseExiftool: exiftoolParser{},
	domain.ParseStrings:  stringsParser{},
	domain.ParseBinwalk:  binwalkParser{},
	domain.ParseXxd:      xxdParser{},
	domain.ParseEnt:      entParser{},
	domain.ParseFfprobe:  ffprobeParser{},
	domain.ParseSteghide: steghideParser{},
}

// ForID returns the adapter registered for id.
func ForID(id domain.ParserID) (Parser, bool) {
	p, ok := parsers[id]
	return p, ok
}

// Known reports whether an adapter exists for id. The registry uses this
// to reject specs that name a parser nothing implements.
func Known(id domain.ParserID) bool {
	_, ok := parsers[id]
	return ok
}

// Extract runs the adapter selected by the invocation's spec. Invocations
// whose process did not terminate normally yield no findings and no
// adapter call; nonzero exits are salvage-parsed because several wrapped
// tools exit 1 while still printing usable output.
func Extract(inv domain.ToolInvocation) []domain.Finding {
	if !inv.Parseable() {
		return nil
	}
	p, ok := ForID(inv.Spec.Parser)
	if !ok {
		return nil
	}
	return p.Parse(inv)
}
