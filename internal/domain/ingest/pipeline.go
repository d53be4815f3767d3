// Package ingest composes the extractors and classifiers into per-source
// pipelines (SMS, email, statement rows) and applies the source-specific
// validity gates. Adapters skip items they cannot parse instead of failing
// the batch.
package ingest

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/classify"
	"github.com/finsift/finsift/internal/domain/extract"
	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

// Default amount sanity bounds, in rupees. Amounts outside the bound are
// junk matches (OTPs, account fragments), not transactions.
var (
	DefaultMinAmount = decimal.NewFromInt(1)
	DefaultMaxAmount = decimal.NewFromInt(100_000_000)
)

// Pipeline holds the shared pattern library and the validity bounds. It is
// stateless beyond its read-only configuration and safe for concurrent use.
type Pipeline struct {
	lib        *patterns.Library
	log        *slog.Logger
	minAmount  decimal.Decimal
	maxAmount  decimal.Decimal
	emailBatch int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAmountBounds overrides the amount sanity bounds.
func WithAmountBounds(min, max decimal.Decimal) Option {
	return func(p *Pipeline) {
		p.minAmount = min
		p.maxAmount = max
	}
}

// WithEmailBatchLimit overrides the per-request email batch bound.
func WithEmailBatchLimit(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.emailBatch = n
		}
	}
}

// WithLogger sets the logger used for file decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = logger
	}
}

// NewPipeline creates a pipeline over the given library.
func NewPipeline(lib *patterns.Library, opts ...Option) *Pipeline {
	p := &Pipeline{
		lib:        lib,
		log:        slog.Default(),
		minAmount:  DefaultMinAmount,
		maxAmount:  DefaultMaxAmount,
		emailBatch: defaultEmailBatch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// amountInBounds applies the sanity gate on top of the extractor result.
func (p *Pipeline) amountInBounds(amount decimal.Decimal) bool {
	return amount.Cmp(p.minAmount) >= 0 && amount.Cmp(p.maxAmount) <= 0
}

// build runs the shared extraction sequence over already-gated text and
// assembles the immutable record. Returns nil when the amount cannot be
// resolved or fails the sanity bound, or when the assembled record does not
// validate; the caller skips such items.
func (p *Pipeline) build(source record.Source, text, sender string, at time.Time) *record.TransactionRecord {
	amount, ok := extract.Amount(p.lib, text)
	if !ok || !p.amountInBounds(amount) {
		return nil
	}

	direction := extract.Direction(p.lib, text)
	merchant := extract.Merchant(p.lib, text, sender)
	category, invType := classify.Category(p.lib, text, merchant)

	rec := &record.TransactionRecord{
		ID:             uuid.New(),
		RawText:        record.Truncate(text, record.MaxRawTextLen),
		Source:         source,
		Timestamp:      at.UnixMilli(),
		Amount:         amount,
		Direction:      direction,
		Category:       category,
		InvestmentType: invType,
		Merchant:       merchant,
		PaymentMethod:  extract.PaymentMethod(text),
		ReferenceNo:    extract.Reference(p.lib, text),
		BalanceAfter:   extract.Balance(p.lib, text),
	}
	rec.Summary = record.BuildSummary(rec)

	if err := rec.Validate(); err != nil {
		return nil
	}
	return rec
}
