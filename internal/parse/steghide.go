package parse

import (
	"strings"

	"bytemomo/manta/internal/domain"
)

// steghideParser reads "steghide info" output:
//
//	"cover.jpg":
//	  format: jpeg
//	  capacity: 1.2 KB
//
// steghide exits 1 when no passphrase matches, but the format and
// capacity lines above are printed first, so this adapter is the main
// customer of the nonzero-exit salvage path.
type steghideParser struct{}

func (steghideParser) ID() domain.ParserID { return domain.ParseSteghide }

func (steghideParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			// The leading `"cover.jpg":` line and section headers carry
			// no value.
			continue
		}
		switch key {
		case "format", "capacity", "embedded file", "encryption", "compression":
			findings = append(findings, domain.Finding{
				Category: domain.CategoryMetadataField,
				Tool:     inv.Spec.Name,
				Metadata: &domain.MetadataField{Key: key, Value: value},
			})
		}
	}
	return findings
}
