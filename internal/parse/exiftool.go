package parse

import (
	"strings"

	"bytemomo/manta/internal/domain"
)

// exiftoolParser reads exiftool's default tabular output, one
// "Key Name : value" pair per line.
type exiftoolParser struct{}

func (exiftoolParser) ID() domain.ParserID { return domain.ParseExiftool }

func (exiftoolParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		findings = append(findings, domain.Finding{
			Category: domain.CategoryMetadataField,
			Tool:     inv.Spec.Name,
			Metadata: &domain.MetadataField{Key: key, Value: value},
		})
	}
	return findings
}
