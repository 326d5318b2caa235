package parse

import (
	"strconv"
	"strings"

	"bytemomo/manta/internal/domain"
)

// entParser reads ent(1) output. The headline entropy line
//
//	Entropy = 7.226847 bits per byte.
//
// becomes one entropy sample. When the tool runs with -c it also prints
// an occurrence table, one row per byte value:
//
//	Value Char Occurrences Fraction
//	 32   	      31   0.003784
//	104 h	      12   0.001465
//
// each row yielding one histogram bucket and one frequency sample. The
// optional printable-char column makes the field count vary, so rows are
// matched from both ends.
type entParser struct{}

func (entParser) ID() domain.ParserID { return domain.ParseEnt }

func (entParser) Parse(inv domain.ToolInvocation) []domain.Finding {
	var findings []domain.Finding

	sc := scanLines(inv.Stdout)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if strings.HasPrefix(line, "Entropy = ") {
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				continue
			}
			findings = append(findings, domain.Finding{
				Category: domain.CategoryEntropySample,
				Tool:     inv.Spec.Name,
				Entropy:  &domain.EntropySample{BitsPerByte: v},
			})
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		value, err := strconv.Atoi(fields[0])
		if err != nil || value < 0 || value > 255 {
			continue
		}
		count, err := strconv.ParseInt(fields[len(fields)-2], 10, 64)
		if err != nil {
			continue
		}
		fraction, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			continue
		}

		b := byte(value)
		findings = append(findings,
			domain.Finding{
				Category:  domain.CategoryHistogramBucket,
				Tool:      inv.Spec.Name,
				Histogram: &domain.HistogramBucket{Byte: b, Count: count},
			},
			domain.Finding{
				Category:  domain.CategoryFrequencySample,
				Tool:      inv.Spec.Name,
				Frequency: &domain.FrequencySample{Byte: b, Fraction: fraction},
			},
		)
	}
	return findings
}
