package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsift/finsift/internal/domain/ingest"
	"github.com/finsift/finsift/internal/domain/record"
	"github.com/finsift/finsift/pkg/metrics"
)

// ImportStats summarizes one import run.
type ImportStats struct {
	Parsed     int // records that passed extraction
	Inserted   int // records committed to the store
	Duplicates int // records dropped by fingerprint dedup
	Skipped    int // inputs rejected by a validity gate
}

// Importer runs a source adapter and commits the surviving records to a
// Store. Commits are sequential so concurrent importers over the same
// store dedup correctly.
type Importer struct {
	store       Store
	pipeline    *ingest.Pipeline
	log         *slog.Logger
	granularity time.Duration
}

// NewImporter creates an importer. A non-positive granularity falls back
// to DefaultGranularity.
func NewImporter(store Store, pipeline *ingest.Pipeline, logger *slog.Logger, granularity time.Duration) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	return &Importer{store: store, pipeline: pipeline, log: logger, granularity: granularity}
}

// ImportSMS parses and commits a batch of SMS messages.
func (im *Importer) ImportSMS(ctx context.Context, messages []ingest.SMSMessage) (ImportStats, error) {
	records := im.pipeline.ParseSMSBatch(messages)
	return im.commit(ctx, record.SourceSMS, records, len(messages)-len(records))
}

// ImportEmails parses and commits a batch of emails.
func (im *Importer) ImportEmails(ctx context.Context, emails []ingest.EmailMessage) (ImportStats, error) {
	records := im.pipeline.ParseEmails(emails)
	return im.commit(ctx, record.SourceEmail, records, len(emails)-len(records))
}

// ImportCSV parses and commits a CSV statement export.
func (im *Importer) ImportCSV(ctx context.Context, data []byte) (ImportStats, error) {
	res := im.pipeline.ImportCSV(data)
	return im.commit(ctx, record.SourceStatement, res.Records, res.SkippedRows)
}

// ImportXLSX parses and commits an Excel statement export.
func (im *Importer) ImportXLSX(ctx context.Context, data []byte) (ImportStats, error) {
	res := im.pipeline.ImportXLSX(data)
	return im.commit(ctx, record.SourceStatement, res.Records, res.SkippedRows)
}

// ImportStatementLines parses and commits free-text statement lines.
func (im *Importer) ImportStatementLines(ctx context.Context, lines []string) (ImportStats, error) {
	res := im.pipeline.ParseLines(lines)
	return im.commit(ctx, record.SourceStatement, res.Records, res.SkippedRows)
}

func (im *Importer) commit(ctx context.Context, source record.Source, records []record.TransactionRecord, skipped int) (ImportStats, error) {
	stats := ImportStats{Parsed: len(records), Skipped: skipped}

	metrics.RecordsParsed.WithLabelValues(string(source)).Add(float64(len(records)))
	metrics.RecordsSkipped.WithLabelValues(string(source)).Add(float64(skipped))

	for i := range records {
		rec := &records[i]
		fp := Fingerprint(rec, im.granularity)
		inserted, err := im.store.InsertIfNew(ctx, fp, rec)
		if err != nil {
			return stats, err
		}
		if !inserted {
			stats.Duplicates++
			metrics.RecordsDeduplicated.Inc()
			continue
		}
		stats.Inserted++
		metrics.RecordsStored.Inc()
	}

	im.log.Info("import finished",
		"source", source,
		"parsed", stats.Parsed,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
	)
	return stats, nil
}
