package parse

import (
	"strings"

	"bytemomo/manta/internal/domain"
)

// maxStringMatches bounds the findings from a single strings run; a large
// binary can emit hundreds of thousands of lines and the visualizer only
// ever shows the head of the list.
const maxStringMatches = 5000

// stringsParser reads strings(1) output, one extracted string per line.
type stringsParser struct{}

func (stringsParser) ID() domain.ParserID { return domain.ParseStrings }

func (stringsParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() && len(findings) < maxStringMatches {
		value := strings.TrimRight(sc.Text(), "\r")
		if value == "" {
			continue
		}
		findings = append(findings, domain.Finding{
			Category: domain.CategoryStringMatch,
			Tool:     inv.Spec.Name,
			String:   &domain.StringMatch{Value: value},
		})
	}
	return findings
}
