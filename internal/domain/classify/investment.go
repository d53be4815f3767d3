// Package classify implements the investment and category classifiers. Both
// are deterministic rule evaluators over the shared pattern library; every
// decision carries a reason trail for diagnostics.
package classify

import (
	"fmt"
	"strings"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

// Confidence is the four-valued ordinal derived from the weighted score.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

// Score thresholds for the confidence mapping.
const (
	highThreshold   = 50
	mediumThreshold = 30
	lowThreshold    = 15
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceLow:
		return "LOW"
	}
	return "NONE"
}

// Result is the investment classifier output. It is an intermediate value,
// never persisted directly.
type Result struct {
	IsInvestment bool
	Confidence   Confidence
	Score        int
	Type         record.InvestmentType
	Reasons      []string
}

// Investment scores the text against the five keyword tiers. Tier
// contributions are independent and additive; a message can trigger several
// tiers. IsInvestment is true iff confidence reaches MEDIUM — this single
// gate decides whether a transaction lands in the INVESTMENT category.
func Investment(lib *patterns.Library, text string) Result {
	upper := strings.ToUpper(text)

	res := Result{}
	for i := range lib.InvestmentTiers {
		tier := &lib.InvestmentTiers[i]
		hits := tier.Hits(upper)
		if len(hits) == 0 {
			continue
		}

		res.Score += tier.Weight
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("%s tier (+%d): %s", tier.Name, tier.Weight, strings.Join(hits, ", ")))

		switch {
		case tier.Override:
			// Retirement tier runs last and replaces whatever the
			// earlier tiers assigned.
			res.Type = retirementSubType(hits)
		case tier.SubType != record.InvestmentNone:
			if res.Type == record.InvestmentNone {
				res.Type = tier.SubType
			}
		default:
			if res.Type == record.InvestmentNone {
				res.Type = vocabularySubType(hits)
			}
		}
	}

	switch {
	case res.Score >= highThreshold:
		res.Confidence = ConfidenceHigh
	case res.Score >= mediumThreshold:
		res.Confidence = ConfidenceMedium
	case res.Score >= lowThreshold:
		res.Confidence = ConfidenceLow
	default:
		res.Confidence = ConfidenceNone
	}

	res.IsInvestment = res.Confidence >= ConfidenceMedium
	if res.IsInvestment && res.Type == record.InvestmentNone {
		res.Type = record.InvestmentOther
	}
	if !res.IsInvestment {
		res.Type = record.InvestmentNone
	}
	return res
}

// vocabularySubType maps general investment vocabulary to a sub-type: SIP
// terms first, then fund/unit/folio terms, then equity terms, else OTHER.
func vocabularySubType(hits []string) record.InvestmentType {
	for _, h := range hits {
		switch h {
		case "SIP", "SYSTEMATIC INVESTMENT":
			return record.InvestmentSIP
		}
	}
	for _, h := range hits {
		switch h {
		case "MUTUAL FUND", "NAV", "UNITS", "FOLIO", "ELSS", "INDEX FUND",
			"GROWTH PLAN", "DIRECT PLAN":
			return record.InvestmentMutualFund
		}
	}
	for _, h := range hits {
		switch h {
		case "EQUITY", "STOCK", "SHARES", "DEMAT", "ISIN":
			return record.InvestmentStocks
		}
	}
	return record.InvestmentOther
}

// retirementSubType picks PPF or NPS from the retirement-tier hits. PPF
// terms are checked first; a generic pension hit resolves to NPS.
func retirementSubType(hits []string) record.InvestmentType {
	for _, h := range hits {
		switch h {
		case "PPF", "PUBLIC PROVIDENT", "PROVIDENT FUND":
			return record.InvestmentPPF
		}
	}
	return record.InvestmentNPS
}
