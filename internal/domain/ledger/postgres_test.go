package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_InsertIfNew(t *testing.T) {
	t.Run("new fingerprint inserts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		store := NewPostgresStore(mock)
		inserted, err := store.InsertIfNew(context.Background(), "fp-1", fpRecord(dayBase))
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflicting fingerprint is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		store := NewPostgresStore(mock)
		inserted, err := store.InsertIfNew(context.Background(), "fp-1", fpRecord(dayBase))
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("database error propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO transactions").
			WillReturnError(errors.New("connection refused"))

		store := NewPostgresStore(mock)
		_, err = store.InsertIfNew(context.Background(), "fp-1", fpRecord(dayBase))
		assert.Error(t, err)
	})
}

func TestPostgresStore_Recent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := fpRecord(dayBase)
	rows := pgxmock.NewRows([]string{
		"id", "raw_text", "source", "ts", "amount_paise", "direction",
		"category", "investment_type", "merchant", "payment_method",
		"reference_no", "balance_paise", "summary",
	}).AddRow(
		rec.ID, rec.RawText, "SMS", rec.Timestamp, int64(50000), "DEBIT",
		"SHOPPING", "", "Amazon", "UPI", "123456789", (*int64)(nil), "Spent ₹500.00 at Amazon via UPI",
	)

	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs(10).
		WillReturnRows(rows)

	store := NewPostgresStore(mock)
	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "500", got[0].Amount.String())
	assert.Equal(t, "Amazon", got[0].Merchant)
	assert.Nil(t, got[0].BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}
