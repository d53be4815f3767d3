package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/record"
)

// DB is the subset of pgxpool.Pool the store uses. *pgxpool.Pool satisfies
// it, as does a pgxmock pool in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore persists records in the transactions table. Amounts are
// stored in paise so no driver-side decimal codec is needed.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store over the given pool.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InsertIfNew implements Store. The fingerprint carries a unique constraint;
// a conflicting insert is a no-op and reports false.
func (s *PostgresStore) InsertIfNew(ctx context.Context, fingerprint string, rec *record.TransactionRecord) (bool, error) {
	query := `
		INSERT INTO transactions (
			id, fingerprint, raw_text, source, ts, amount_paise, direction,
			category, investment_type, merchant, payment_method, reference_no,
			balance_paise, summary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (fingerprint) DO NOTHING
	`

	var balancePaise *int64
	if rec.BalanceAfter != nil {
		v := rec.BalanceAfter.Shift(2).IntPart()
		balancePaise = &v
	}

	tag, err := s.db.Exec(ctx, query,
		rec.ID,
		fingerprint,
		rec.RawText,
		string(rec.Source),
		rec.Timestamp,
		rec.Amount.Shift(2).IntPart(),
		string(rec.Direction),
		string(rec.Category),
		string(rec.InvestmentType),
		rec.Merchant,
		string(rec.PaymentMethod),
		rec.ReferenceNo,
		balancePaise,
		rec.Summary,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Recent returns the newest stored records, most recent first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]record.TransactionRecord, error) {
	query := `
		SELECT id, raw_text, source, ts, amount_paise, direction, category,
		       investment_type, merchant, payment_method, reference_no,
		       balance_paise, summary
		FROM transactions
		ORDER BY ts DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []record.TransactionRecord
	for rows.Next() {
		var (
			rec          record.TransactionRecord
			source       string
			direction    string
			category     string
			invType      string
			method       string
			amountPaise  int64
			balancePaise *int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.RawText,
			&source,
			&rec.Timestamp,
			&amountPaise,
			&direction,
			&category,
			&invType,
			&rec.Merchant,
			&method,
			&rec.ReferenceNo,
			&balancePaise,
			&rec.Summary,
		); err != nil {
			return nil, err
		}
		rec.Source = record.Source(source)
		rec.Direction = record.Direction(direction)
		rec.Category = record.Category(category)
		rec.InvestmentType = record.InvestmentType(invType)
		rec.PaymentMethod = record.PaymentMethod(method)
		rec.Amount = decimal.New(amountPaise, -2)
		if balancePaise != nil {
			b := decimal.New(*balancePaise, -2)
			rec.BalanceAfter = &b
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
