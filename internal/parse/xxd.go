package parse

import (
	"strconv"
	"strings"

	"bytemomo/manta/internal/domain"
)

// xxdParser reads xxd's canonical hex dump, one 16-byte row per line:
//
//	00000010: 0000 0320 0000 0258 0806 0000 00f0 18dd  ... ...X........
//
// Each row becomes one hex-region finding carrying the packed hex bytes
// and the ASCII gutter.
type xxdParser struct{}

func (xxdParser) ID() domain.ParserID { return domain.ParseXxd }

func (xxdParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		line := sc.Text()
		offsetStr, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		offset, err := strconv.ParseInt(strings.TrimSpace(offsetStr), 16, 64)
		if err != nil {
			continue
		}

		// Hex columns and ASCII gutter are separated by two spaces.
		rest = strings.TrimPrefix(rest, " ")
		hexPart, ascii, _ := strings.Cut(rest, "  ")
		packed := strings.ReplaceAll(hexPart, " ", "")
		if packed == "" {
			continue
		}

		findings = append(findings, domain.Finding{
			Category: domain.CategoryHexRegion,
			Tool:     inv.Spec.Name,
			Hex: &domain.HexRegion{
				Offset: offset,
				Length: len(packed) / 2,
				Bytes:  packed,
				ASCII:  ascii,
			},
		})
	}
	return findings
}
