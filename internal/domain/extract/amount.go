// Package extract implements the field extractors that turn notification
// text into structured values. All extractors are pure functions over an
// immutable pattern library and are safe for concurrent use.
package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/patterns"
)

// Amount resolves a monetary value from free text by walking the library's
// ordered amount cascade. The first pattern whose capture parses to a
// positive number wins; there is no best-match scoring, the list order is
// the priority.
func Amount(lib *patterns.Library, text string) (decimal.Decimal, bool) {
	for _, re := range lib.Amount {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		d, err := decimal.NewFromString(raw)
		if err != nil || !d.IsPositive() {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// HasAmount reports whether any amount pattern matches at all. Adapters use
// it as a cheap validity gate before full extraction.
func HasAmount(lib *patterns.Library, text string) bool {
	for _, re := range lib.Amount {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
