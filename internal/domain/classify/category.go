package classify

import (
	"strings"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

// Category assigns a spending category to the combined body+merchant text.
// The investment classifier is consulted first and short-circuits the rule
// list when it fires. Otherwise the ordered decision list is walked top to
// bottom and the first matching rule wins; no match yields OTHER.
func Category(lib *patterns.Library, text, merchant string) (record.Category, record.InvestmentType) {
	if inv := Investment(lib, text); inv.IsInvestment {
		return record.CategoryInvestment, inv.Type
	}

	combined := strings.ToLower(text)
	if merchant != "" {
		combined += " " + strings.ToLower(merchant)
	}

	for _, rule := range lib.CategoryRules {
		for _, kw := range rule.Keywords {
			if matchKeyword(combined, kw) {
				return rule.Category, record.InvestmentNone
			}
		}
	}
	return record.CategoryOther, record.InvestmentNone
}

// matchKeyword treats phrase keywords as substrings and single-word keywords
// as word prefixes, so "rent" does not fire inside "current" while plural
// merchant forms still match their stem.
func matchKeyword(text, kw string) bool {
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(text, kw)
	}
	return patterns.ContainsWordPrefix(text, kw)
}
