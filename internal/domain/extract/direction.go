package extract

import (
	"strings"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

// Direction decides debit vs. credit by keyword-occurrence counts. Credit
// wins only when its count strictly exceeds debit's; ties, including
// zero-zero, resolve to DEBIT. Treating ambiguous messages as spend is a
// deliberate conservative bias and must not be changed casually.
func Direction(lib *patterns.Library, text string) record.Direction {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	debit := countKeywords(lower, tokens, lib.DebitKeywords)
	credit := countKeywords(lower, tokens, lib.CreditKeywords)

	if credit > debit {
		return record.Credit
	}
	return record.Debit
}

// HasDirectionKeyword reports whether any debit or credit keyword appears
// in the text, under the same matching rule Direction uses for counting.
func HasDirectionKeyword(lib *patterns.Library, text string) bool {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)
	return countKeywords(lower, tokens, lib.DebitKeywords) > 0 ||
		countKeywords(lower, tokens, lib.CreditKeywords) > 0
}

// countKeywords counts phrase keywords as substrings and single-word
// keywords as whole tokens, so "cr" does not fire inside "credited".
func countKeywords(lower string, tokens map[string]int, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		if strings.ContainsRune(kw, ' ') {
			total += strings.Count(lower, kw)
			continue
		}
		total += tokens[kw]
	}
	return total
}

func tokenize(lower string) map[string]int {
	counts := make(map[string]int)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	for _, f := range fields {
		counts[f]++
	}
	return counts
}
