package extract

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

const (
	merchantMinLen = 2
	merchantMaxLen = 50
)

var (
	merchantNoise = regexp.MustCompile(`[^A-Za-z0-9&.'\- ]+`)
	multiSpace    = regexp.MustCompile(`\s+`)
	trailingRef   = regexp.MustCompile(`\s+\d{4,}$`)
)

// Captures containing these are account phrases, not counterparty names.
var merchantStopwords = []string{"your", "account", "a/c", "ending", "linked"}

// Merchant resolves a human-readable counterparty name. The capture cascade
// runs in priority order and the first non-empty candidate inside the length
// bound wins. When no pattern captures anything the known-merchant table is
// searched, then the sender metadata is used as a last resort. Returns ""
// when nothing qualifies; merchant is always optional.
func Merchant(lib *patterns.Library, text, sender string) string {
	for _, re := range lib.Merchant {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if len(candidate) < merchantMinLen || len(candidate) > merchantMaxLen {
			continue
		}
		if hasStopword(candidate) {
			continue
		}
		if cleaned := CleanMerchant(lib, candidate); cleaned != "" {
			return cleaned
		}
	}

	if name, ok := lib.MatchKnownMerchant(text); ok {
		return record.Truncate(name, record.MaxMerchantLen)
	}

	return merchantFromSender(sender)
}

// CleanMerchant collapses whitespace, strips punctuation noise and trailing
// reference digits, canonicalizes against the known-merchant table, and
// truncates to the storage bound.
func CleanMerchant(lib *patterns.Library, raw string) string {
	s := merchantNoise.ReplaceAllString(raw, " ")
	s = trailingRef.ReplaceAllString(s, "")
	s = strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
	if len(s) < merchantMinLen {
		return ""
	}

	if canonical, ok := canonicalName(lib, s); ok {
		return record.Truncate(canonical, record.MaxMerchantLen)
	}
	return record.Truncate(titleCase(s), record.MaxMerchantLen)
}

// canonicalName collapses merchant variations ("AMZN Pay", "amazon pay in")
// onto the table's display name via substring then fuzzy matching.
func canonicalName(lib *patterns.Library, cleaned string) (string, bool) {
	upper := strings.ToUpper(cleaned)

	for _, m := range lib.KnownMerchants {
		if patterns.ContainsWord(upper, m.Token) {
			return m.Display, true
		}
	}

	// Fuzzy pass catches abbreviations the substring pass missed. Only
	// short candidates are considered, long strings rank-match too loosely.
	if len(upper) <= 12 {
		for _, m := range lib.KnownMerchants {
			if rank := fuzzy.RankMatchFold(upper, m.Token); rank >= 0 && rank <= 2 {
				return m.Display, true
			}
		}
	}
	return "", false
}

// merchantFromSender falls back to the message sender, excluding automated
// alert addresses and stripping header decoration.
func merchantFromSender(sender string) string {
	s := strings.TrimSpace(sender)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "noreply") || strings.Contains(lower, "no-reply") ||
		strings.Contains(lower, "donotreply") || strings.Contains(lower, "alert") {
		return ""
	}

	// "Acme Bank <statements@acme.in>" -> "Acme Bank"
	if idx := strings.Index(s, "<"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	} else if idx := strings.Index(s, "@"); idx > 0 {
		s = s[:idx]
	}
	s = strings.Trim(s, `"<> `)
	if len(s) < merchantMinLen || len(s) > merchantMaxLen {
		return ""
	}
	if !hasLetter(s) {
		return ""
	}
	return record.Truncate(titleCase(s), record.MaxMerchantLen)
}

func hasStopword(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, w := range merchantStopwords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
