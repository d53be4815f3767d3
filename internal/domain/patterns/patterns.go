// Package patterns holds the precompiled extraction patterns and keyword sets
// shared by every extractor and classifier. A Library is built once at startup
// and is read-only afterwards, so it can back arbitrarily many concurrent
// extraction calls without locking.
package patterns

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/finsift/finsift/internal/domain/record"
)

// Library is the immutable pattern set. Ordering inside each slice is a
// priority list: extractors stop at the first match, so the order must not
// be changed during refactors.
type Library struct {
	// Amount is the ordered regex cascade for monetary values. Each pattern
	// has exactly one capture group holding the numeric text.
	Amount []*regexp.Regexp

	// DebitKeywords and CreditKeywords feed the direction classifier.
	DebitKeywords  []string
	CreditKeywords []string

	// Merchant is the ordered capture cascade for counterparty names.
	Merchant []*regexp.Regexp

	// KnownMerchants maps uppercase tokens to display names, with an
	// Aho-Corasick matcher over the tokens for single-pass lookup.
	KnownMerchants  []KnownMerchant
	merchantMatcher *ahocorasick.Matcher

	// Reference and Balance are the secondary-field cascades.
	Reference []*regexp.Regexp
	Balance   []*regexp.Regexp

	// TransactionKeywords gate the SMS adapter; matched against upper text.
	TransactionKeywords []string
	txnMatcher          *ahocorasick.Matcher

	// BankSenders is the sender allow-list for the SMS adapter.
	BankSenders   []string
	senderMatcher *ahocorasick.Matcher

	// Noise patterns mark statement rows that are not transactions
	// (headers, totals, pagination).
	Noise []*regexp.Regexp

	// DateFormats is the fixed-priority list of statement date layouts,
	// day-first variants before month-first.
	DateFormats []string

	// DateToken finds a date-looking token inside a free-text statement line.
	DateToken *regexp.Regexp

	// CategoryRules is the ordered decision list for spending categories.
	CategoryRules []CategoryRule

	// InvestmentTiers are the five weighted keyword groups, in evaluation
	// order; the retirement tier is last so its sub-type override wins.
	InvestmentTiers []InvestmentTier
}

// KnownMerchant is one entry of the fixed payee/app table.
type KnownMerchant struct {
	Token   string // uppercase token searched in text
	Display string // clean display name
}

// CategoryRule is one (keywords, category) pair of the decision list.
type CategoryRule struct {
	Category record.Category
	Keywords []string
}

// InvestmentTier is one weighted keyword group of the investment classifier.
type InvestmentTier struct {
	Name     string
	Weight   int
	Keywords []string
	// SubType is the investment sub-type this tier implies, empty when the
	// sub-type is resolved per keyword (the vocabulary tier).
	SubType record.InvestmentType
	// Override marks the tier whose sub-type replaces earlier assignments.
	Override bool
	matcher  *ahocorasick.Matcher
}

// New builds the library. Call once and share the result.
func New() *Library {
	lib := &Library{
		Amount:              compileAll(amountPatterns),
		DebitKeywords:       debitKeywords,
		CreditKeywords:      creditKeywords,
		Merchant:            compileAll(merchantPatterns),
		KnownMerchants:      knownMerchants,
		Reference:           compileAll(referencePatterns),
		Balance:             compileAll(balancePatterns),
		TransactionKeywords: transactionKeywords,
		BankSenders:         bankSenders,
		Noise:               compileAll(noisePatterns),
		DateFormats:         dateFormats,
		DateToken:           regexp.MustCompile(dateTokenPattern),
		CategoryRules:       categoryRules,
		InvestmentTiers:     investmentTiers,
	}

	tokens := make([]string, len(lib.KnownMerchants))
	for i, m := range lib.KnownMerchants {
		tokens[i] = m.Token
	}
	lib.merchantMatcher = ahocorasick.NewStringMatcher(tokens)
	lib.txnMatcher = ahocorasick.NewStringMatcher(upperAll(lib.TransactionKeywords))
	lib.senderMatcher = ahocorasick.NewStringMatcher(upperAll(lib.BankSenders))

	for i := range lib.InvestmentTiers {
		lib.InvestmentTiers[i].matcher = ahocorasick.NewStringMatcher(upperAll(lib.InvestmentTiers[i].Keywords))
	}

	return lib
}

// MatchKnownMerchant returns the display name of the earliest known merchant
// found in the text. The Aho-Corasick pass narrows the candidates; each hit
// is then re-checked for word boundaries so CRED does not fire inside
// "credited".
func (l *Library) MatchKnownMerchant(text string) (string, bool) {
	upper := strings.ToUpper(text)
	hits := l.merchantMatcher.Match([]byte(upper))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	bestPos := len(upper)
	for _, h := range hits {
		pos := wordIndex(upper, l.KnownMerchants[h].Token)
		if pos >= 0 && pos < bestPos {
			bestPos = pos
			best = h
		}
	}
	if best < 0 {
		return "", false
	}
	return l.KnownMerchants[best].Display, true
}

// ContainsWord reports whether token occurs in upper as a standalone word,
// not embedded inside a longer alphanumeric run.
func ContainsWord(upper, token string) bool {
	return wordIndex(upper, token) >= 0
}

// ContainsWordPrefix reports whether token occurs at the start of a word, so
// "rent" matches "rent" and "rental" but not "current", and "mcdonald"
// matches "mcdonalds". Both strings must share the same case.
func ContainsWordPrefix(s, token string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], token)
		if i < 0 {
			return false
		}
		i += start
		if i == 0 || !isAlnum(s[i-1]) {
			return true
		}
		start = i + 1
	}
}

// wordIndex returns the byte offset of the first standalone occurrence of
// token in upper, or -1.
func wordIndex(upper, token string) int {
	for start := 0; ; {
		i := strings.Index(upper[start:], token)
		if i < 0 {
			return -1
		}
		i += start
		before := i == 0 || !isAlnum(upper[i-1])
		afterIdx := i + len(token)
		after := afterIdx >= len(upper) || !isAlnum(upper[afterIdx])
		if before && after {
			return i
		}
		start = i + 1
	}
}

func isAlnum(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// HasTransactionKeyword reports whether the text mentions any transaction
// verb or channel keyword.
func (l *Library) HasTransactionKeyword(text string) bool {
	return len(l.txnMatcher.Match([]byte(strings.ToUpper(text)))) > 0
}

// IsBankSender reports whether the sender contains a known bank or fintech
// short-code token.
func (l *Library) IsBankSender(sender string) bool {
	return len(l.senderMatcher.Match([]byte(strings.ToUpper(sender)))) > 0
}

// Hits returns the tier keywords found in the (already uppercased) text, in
// keyword-list order, for the classifier's reason trail.
func (t *InvestmentTier) Hits(upperText string) []string {
	idx := t.matcher.Match([]byte(upperText))
	if len(idx) == 0 {
		return nil
	}
	found := make(map[int]bool, len(idx))
	for _, i := range idx {
		found[i] = true
	}
	hits := make([]string, 0, len(idx))
	for i, kw := range t.Keywords {
		if found[i] {
			hits = append(hits, kw)
		}
	}
	return hits
}

// IsNoise reports whether a statement description matches a non-transaction
// row pattern (opening/closing balance, totals, account headers, pagination).
func (l *Library) IsNoise(description string) bool {
	for _, re := range l.Noise {
		if re.MatchString(description) {
			return true
		}
	}
	return false
}

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
