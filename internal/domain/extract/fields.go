package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

const maxReferenceLen = 30

// PaymentMethod detects the payment channel from keywords. The three
// secondary extractors in this file are independent and best-effort: any of
// them may return an empty value without affecting the others.
func PaymentMethod(text string) record.PaymentMethod {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "upi") || strings.Contains(lower, "@"):
		return record.MethodUPI
	case strings.Contains(lower, "neft"):
		return record.MethodNEFT
	case strings.Contains(lower, "imps"):
		return record.MethodIMPS
	case strings.Contains(lower, "rtgs"):
		return record.MethodOther
	case strings.Contains(lower, "card") || strings.Contains(lower, "atm") || strings.Contains(lower, "pos "):
		return record.MethodCard
	case strings.Contains(lower, "cheque") || strings.Contains(lower, "chq"):
		return record.MethodCheque
	case strings.Contains(lower, "cash"):
		return record.MethodCash
	}
	return record.MethodNone
}

// Reference extracts a transaction reference number from labeled forms or a
// UPI numeric id, capped at maxReferenceLen.
func Reference(lib *patterns.Library, text string) string {
	for _, re := range lib.Reference {
		if m := re.FindStringSubmatch(text); m != nil {
			return record.Truncate(m[1], maxReferenceLen)
		}
	}
	return ""
}

// Balance extracts the post-transaction account balance from "bal"-labeled
// amounts, using the same numeric cleaning as the amount extractor.
func Balance(lib *patterns.Library, text string) *decimal.Decimal {
	for _, re := range lib.Balance {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			continue
		}
		return &d
	}
	return nil
}
