package parse

import (
	"strings"

	"bytemomo/manta/internal/domain"
)

// zstegParser reads zsteg's bit-plane scan report. Hit lines look like
//
//	b1,r,lsb,xy         .. text: "hello world"
//	b1,rgb,lsb,xy       .. file: Zip archive data, at least v2.0 to extract
//
// The channel spec on the left becomes the match location. Text payloads
// are quoted; file payloads are libmagic descriptions of embedded data.
type zstegParser struct{}

func (zstegParser) ID() domain.ParserID { return domain.ParseZsteg }

func (zstegParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		line := sc.Text()
		sep := strings.Index(line, "..")
		if sep < 0 {
			continue
		}
		channel := strings.TrimSpace(line[:sep])
		rest := strings.TrimSpace(line[sep+2:])

		switch {
		case strings.HasPrefix(rest, "text:"):
			value := strings.TrimSpace(strings.TrimPrefix(rest, "text:"))
			value = strings.Trim(value, `"`)
			if value == "" {
				continue
			}
			findings = append(findings, domain.Finding{
				Category:   domain.CategoryStringMatch,
				Tool:       inv.Spec.Name,
				Confidence: domain.Conf(0.8),
				String:     &domain.StringMatch{Value: value, Location: channel},
			})
		case strings.HasPrefix(rest, "file:"):
			value := strings.TrimSpace(strings.TrimPrefix(rest, "file:"))
			if value == "" {
				continue
			}
			findings = append(findings, domain.Finding{
				Category:   domain.CategoryStringMatch,
				Tool:       inv.Spec.Name,
				Confidence: domain.Conf(0.5),
				String:     &domain.StringMatch{Value: value, Location: channel},
			})
		}
	}
	return findings
}
