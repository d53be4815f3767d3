// Package metrics exposes Prometheus counters for the extraction pipeline.
// Counters register on the default registry; a caller that serves /metrics
// gets them for free.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsParsed counts records that passed every gate, by source.
	RecordsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsift_records_parsed_total",
		Help: "Transaction records successfully extracted, by source.",
	}, []string{"source"})

	// RecordsSkipped counts inputs rejected by a validity gate, by source.
	RecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsift_records_skipped_total",
		Help: "Inputs rejected by a validity gate, by source.",
	}, []string{"source"})

	// RecordsDeduplicated counts records dropped as fingerprint duplicates.
	RecordsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finsift_records_deduplicated_total",
		Help: "Records dropped because their fingerprint was already stored.",
	})

	// RecordsStored counts records committed to the ledger store.
	RecordsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finsift_records_stored_total",
		Help: "Records committed to the ledger store.",
	})
)
