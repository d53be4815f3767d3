// Package ledger persists extracted transaction records and keeps re-imports
// idempotent through content fingerprinting.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/finsift/finsift/internal/domain/record"
)

// DefaultGranularity is the timestamp rounding window for fingerprints.
// Rounding to the day makes an SMS and the matching statement row collide
// even when their clocks disagree by hours.
const DefaultGranularity = 24 * time.Hour

// descriptionKeyLen bounds the fallback key taken from the raw text when a
// record has no merchant.
const descriptionKeyLen = 24

// Fingerprint derives the dedup identity of a record: SHA-256 over the
// source, the amount in paise, the direction, the normalized merchant (or
// leading raw text), and the timestamp rounded down to the granularity
// window. Two records with equal fingerprints are the same transaction
// observed twice.
func Fingerprint(rec *record.TransactionRecord, granularity time.Duration) string {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	window := granularity.Milliseconds()
	rounded := rec.Timestamp - rec.Timestamp%window

	payload := fmt.Sprintf("%s|%d|%s|%s|%d",
		rec.Source,
		rec.Amount.Shift(2).IntPart(),
		rec.Direction,
		normalizedKey(rec),
		rounded,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// normalizedKey reduces the record to its identifying text: the merchant
// when present, otherwise the head of the raw text, uppercased with
// everything but letters and digits removed.
func normalizedKey(rec *record.TransactionRecord) string {
	src := rec.Merchant
	if src == "" {
		src = record.Truncate(rec.RawText, descriptionKeyLen)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, src)
}
