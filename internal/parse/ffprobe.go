package parse

import (
	"strings"

	"bytemomo/manta/internal/domain"
)

// ffprobeParser reads ffprobe's default show output (-show_format
// -show_streams): ini-style sections of key=value lines,
//
//	[FORMAT]
//	format_name=matroska,webm
//	duration=12.480000
//	[/FORMAT]
//
// Keys are qualified with the lowercased section name so stream and
// format fields stay distinguishable in the merged report.
type ffprobeParser struct{}

func (ffprobeParser) ID() domain.ParserID { return domain.ParseFfprobe }

func (ffprobeParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding
	section := ""

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[/") {
			section = ""
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.Trim(line, "[]"))
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		if section != "" {
			key = section + "." + key
		}
		findings = append(findings, domain.Finding{
			Category: domain.CategoryMetadataField,
			Tool:     inv.Spec.Name,
			Metadata: &domain.MetadataField{Key: key, Value: value},
		})
	}
	return findings
}
