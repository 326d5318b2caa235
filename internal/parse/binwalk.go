package parse

import (
	"strconv"
	"strings"

	"bytemomo/manta/internal/domain"
)

// binwalkParser reads binwalk's signature scan table:
//
//	DECIMAL       HEXADECIMAL     DESCRIPTION
//	--------------------------------------------------------------------
//	0             0x0             PNG image, 800 x 600, 8-bit/color RGBA
//	41            0x29            Zlib compressed data, default compression
//
// Header and rule lines do not start with a decimal offset and are
// skipped naturally.
type binwalkParser struct{}

func (binwalkParser) ID() domain.ParserID { return domain.ParseBinwalk }

func (binwalkParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		offset, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(fields[1], "0x") {
			continue
		}
		findings = append(findings, domain.Finding{
			Category: domain.CategoryHexRegion,
			Tool:     inv.Spec.Name,
			Hex: &domain.HexRegion{
				Offset:      offset,
				Description: strings.Join(fields[2:], " "),
			},
		})
	}
	return findings
}
