// Command finsift extracts transaction records from financial notification
// text: single SMS or email bodies, or whole statement exports.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/classify"
	"github.com/finsift/finsift/internal/domain/ingest"
	"github.com/finsift/finsift/internal/domain/ledger"
	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
	"github.com/finsift/finsift/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if cfg.Observability.MetricsEnabled {
		serveMetrics(cfg.Observability.MetricsPort, logger)
	}

	lib := patterns.New()
	pipeline := ingest.NewPipeline(lib,
		ingest.WithAmountBounds(
			decimal.NewFromInt(cfg.Parser.MinAmount),
			decimal.NewFromInt(cfg.Parser.MaxAmount),
		),
		ingest.WithEmailBatchLimit(cfg.Parser.MaxEmailBatch),
		ingest.WithLogger(logger),
	)

	switch os.Args[1] {
	case "sms":
		err = runSMS(pipeline, os.Args[2:])
	case "classify":
		err = runClassify(lib, os.Args[2:])
	case "import":
		err = runImport(cfg, pipeline, logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: finsift <command> [flags]

commands:
  sms       parse a single SMS body (-sender sets the sender id)
  classify  classify a text snippet (category + investment confidence)
  import    import a statement export (-file path, .csv or .xlsx;
            -postgres persists into the POSTGRES_* database)`)
}

// serveMetrics exposes the Prometheus registry for the lifetime of the
// process.
func serveMetrics(port int, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics listener failed", "addr", addr, "error", err)
		}
	}()
}

func runSMS(pipeline *ingest.Pipeline, args []string) error {
	fs := flag.NewFlagSet("sms", flag.ExitOnError)
	sender := fs.String("sender", "", "SMS sender id, e.g. HDFCBK")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("sms: message body required")
	}

	rec := pipeline.ParseSMS(ingest.SMSMessage{
		Sender:     *sender,
		Body:       strings.Join(fs.Args(), " "),
		ReceivedAt: time.Now(),
	})
	if rec == nil {
		fmt.Println("not a transaction")
		return nil
	}
	return printRecord(rec)
}

func runClassify(lib *patterns.Library, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("classify: text required")
	}
	text := strings.Join(args, " ")

	category, invType := classify.Category(lib, text, "")
	fmt.Printf("category: %s\n", category.DisplayName())

	res := classify.Investment(lib, text)
	fmt.Printf("investment: %v (score %d, confidence %s)\n", res.IsInvestment, res.Score, res.Confidence)
	if invType != record.InvestmentNone {
		fmt.Printf("type: %s\n", invType.DisplayName())
	}
	for _, reason := range res.Reasons {
		fmt.Printf("  %s\n", reason)
	}
	return nil
}

// recordListLimit caps the per-record listing after a Postgres import.
const recordListLimit = 50

func runImport(cfg *config.Config, pipeline *ingest.Pipeline, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "statement export to import (.csv or .xlsx)")
	usePostgres := fs.Bool("postgres", false, "persist into the POSTGRES_* database instead of memory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("import: -file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var (
		store ledger.Store
		list  func() ([]record.TransactionRecord, error)
	)
	if *usePostgres {
		pool, perr := pgxpool.New(ctx, cfg.Database.DSN())
		if perr != nil {
			return fmt.Errorf("connect postgres: %w", perr)
		}
		defer pool.Close()
		pg := ledger.NewPostgresStore(pool)
		store = pg
		list = func() ([]record.TransactionRecord, error) { return pg.Recent(ctx, recordListLimit) }
	} else {
		mem := ledger.NewMemoryStore()
		store = mem
		list = func() ([]record.TransactionRecord, error) { return mem.Records(), nil }
	}

	importer := ledger.NewImporter(store, pipeline, logger, cfg.Dedup.Granularity)

	var stats ledger.ImportStats
	switch strings.ToLower(filepath.Ext(*file)) {
	case ".xlsx":
		stats, err = importer.ImportXLSX(ctx, data)
	case ".csv", ".txt":
		stats, err = importer.ImportCSV(ctx, data)
	default:
		return fmt.Errorf("import: unsupported file type %q", filepath.Ext(*file))
	}
	if err != nil {
		return err
	}

	fmt.Printf("found %d transactions (%d duplicates, %d rows skipped)\n",
		stats.Inserted, stats.Duplicates, stats.Skipped)

	records, err := list()
	if err != nil {
		return err
	}

	var debits, credits decimal.Decimal
	for _, rec := range records {
		fmt.Printf("  %s  %s\n", rec.Time().Format("2006-01-02"), rec.Summary)
		if rec.Direction == record.Debit {
			debits = debits.Add(rec.Amount)
		} else {
			credits = credits.Add(rec.Amount)
		}
	}
	fmt.Printf("total spent %s, total received %s\n",
		record.FormatINR(debits), record.FormatINR(credits))
	return nil
}

func printRecord(rec *record.TransactionRecord) error {
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
