package ingest

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

func newTestPipeline(t testing.TB) *Pipeline {
	t.Helper()
	return NewPipeline(patterns.New())
}

func TestParseSMS(t *testing.T) {
	p := newTestPipeline(t)
	at := time.Date(2025, 1, 12, 10, 30, 0, 0, time.UTC)

	t.Run("full bank debit alert", func(t *testing.T) {
		rec := p.ParseSMS(SMSMessage{
			Sender:     "VM-HDFCBK",
			Body:       "Rs.500.00 debited from a/c **1234 to AMAZON PAY INDIA on 12-01-25. UPI Ref 123456789. Avl bal: Rs.4500.00",
			ReceivedAt: at,
		})
		require.NotNil(t, rec)

		assert.Equal(t, record.SourceSMS, rec.Source)
		assert.Equal(t, "500", rec.Amount.String())
		assert.Equal(t, record.Debit, rec.Direction)
		assert.Equal(t, "Amazon", rec.Merchant)
		assert.Equal(t, record.CategoryShopping, rec.Category)
		assert.Equal(t, record.MethodUPI, rec.PaymentMethod)
		assert.Equal(t, "123456789", rec.ReferenceNo)
		require.NotNil(t, rec.BalanceAfter)
		assert.Equal(t, "4500", rec.BalanceAfter.String())
		assert.Equal(t, at.UnixMilli(), rec.Timestamp)
		assert.NotEmpty(t, rec.Summary)
		assert.NoError(t, rec.Validate())
	})

	t.Run("credit alert", func(t *testing.T) {
		rec := p.ParseSMS(SMSMessage{
			Sender:     "AD-SBIINB",
			Body:       "INR 85,000.00 credited to a/c **9876 by NEFT-SALARY-ACME CORP. Bal: INR 1,20,000.00",
			ReceivedAt: at,
		})
		require.NotNil(t, rec)
		assert.Equal(t, record.Credit, rec.Direction)
		assert.Equal(t, "85000", rec.Amount.String())
		assert.Equal(t, record.CategorySalary, rec.Category)
	})

	t.Run("non-bank sender rejected", func(t *testing.T) {
		rec := p.ParseSMS(SMSMessage{
			Sender:     "+919812345678",
			Body:       "Rs.500 debited from your account",
			ReceivedAt: at,
		})
		assert.Nil(t, rec)
	})

	t.Run("otp message rejected by keyword gate", func(t *testing.T) {
		rec := p.ParseSMS(SMSMessage{
			Sender:     "VM-HDFCBK",
			Body:       "482910 is your OTP. Do not share it with anyone.",
			ReceivedAt: at,
		})
		assert.Nil(t, rec)
	})

	t.Run("promo without amount rejected", func(t *testing.T) {
		rec := p.ParseSMS(SMSMessage{
			Sender:     "VM-HDFCBK",
			Body:       "Pre-approved loan waiting! Reply YES for instant payment options.",
			ReceivedAt: at,
		})
		assert.Nil(t, rec)
	})
}

func TestParseSMSBatch(t *testing.T) {
	p := newTestPipeline(t)
	at := time.Now()

	msgs := []SMSMessage{
		{Sender: "VM-HDFCBK", Body: "Rs.450 debited for SWIGGY order via UPI", ReceivedAt: at},
		{Sender: "FRIEND", Body: "see you at 8?", ReceivedAt: at},
		{Sender: "AX-ICICIB", Body: "Rs.1,200 credited to your a/c", ReceivedAt: at},
	}

	records := p.ParseSMSBatch(msgs)
	require.Len(t, records, 2)
	assert.Equal(t, record.CategoryFood, records[0].Category)
	assert.Equal(t, record.Credit, records[1].Direction)
}

// Randomized chatter must never pass the gates: no bank sender, no amount.
func TestParseSMS_RandomChatterRejected(t *testing.T) {
	p := newTestPipeline(t)
	gofakeit.Seed(11)

	for i := 0; i < 50; i++ {
		msg := SMSMessage{
			Sender:     gofakeit.FirstName(),
			Body:       gofakeit.HipsterSentence(8),
			ReceivedAt: time.Now(),
		}
		if rec := p.ParseSMS(msg); rec != nil {
			t.Fatalf("chatter parsed as transaction: %q -> %+v", msg.Body, rec)
		}
	}
}

func TestIsShortCode(t *testing.T) {
	tests := []struct {
		sender string
		want   bool
	}{
		{"VM-HDFCBK", true},
		{"AXISBK", true},
		{"AD-660022", true},
		{"660022", false},
		{"+919812345678", false},
		{"ab-hdfcbk", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.sender), func(t *testing.T) {
			assert.Equal(t, tt.want, isShortCode(tt.sender))
		})
	}
}
