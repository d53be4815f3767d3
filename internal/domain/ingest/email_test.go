package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

func TestParseEmail(t *testing.T) {
	p := newTestPipeline(t)
	at := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)

	t.Run("plain text transaction mail", func(t *testing.T) {
		rec := p.ParseEmail(EmailMessage{
			From:     "alerts@hdfcbank.net",
			Subject:  "Debit alert",
			Date:     at,
			TextBody: "Rs.2,300.00 debited from your account to MAKEMYTRIP on 03-02-25. Ref No 778899.",
		})
		require.NotNil(t, rec)
		assert.Equal(t, record.SourceEmail, rec.Source)
		assert.Equal(t, "2300", rec.Amount.String())
		assert.Equal(t, record.Debit, rec.Direction)
		assert.Equal(t, record.CategoryTravel, rec.Category)
		assert.Equal(t, "778899", rec.ReferenceNo)
	})

	t.Run("html body is stripped before extraction", func(t *testing.T) {
		rec := p.ParseEmail(EmailMessage{
			From:     "receipts@netflix.com",
			Subject:  "Payment receipt",
			Date:     at,
			HTMLBody: `<html><style>p{color:red}</style><body><p>You paid <b>Rs.649.00</b> for your Netflix subscription.</p></body></html>`,
		})
		require.NotNil(t, rec)
		assert.Equal(t, "649", rec.Amount.String())
		assert.Equal(t, record.CategorySubscriptions, rec.Category)
	})

	t.Run("snippet fallback", func(t *testing.T) {
		rec := p.ParseEmail(EmailMessage{
			From:    "alerts@icicibank.com",
			Subject: "Transaction alert",
			Date:    at,
			Snippet: "INR 1,500.00 credited to your account by IMPS",
		})
		require.NotNil(t, rec)
		assert.Equal(t, record.Credit, rec.Direction)
		assert.Equal(t, record.MethodIMPS, rec.PaymentMethod)
	})

	t.Run("promotional mail with a price rejected", func(t *testing.T) {
		// "address" must not count as a debit keyword hit.
		rec := p.ParseEmail(EmailMessage{
			From:     "offers@travel.example",
			Subject:  "Summer getaway sale",
			Date:     at,
			TextBody: "Rooms from Rs.2,999 per night at our new address in Goa",
		})
		assert.Nil(t, rec)
	})

	t.Run("newsletter without amount rejected", func(t *testing.T) {
		rec := p.ParseEmail(EmailMessage{
			From:     "news@shopping.example",
			Subject:  "This week's best deals",
			Date:     at,
			TextBody: "Big discounts on electronics this weekend only!",
		})
		assert.Nil(t, rec)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		rec := p.ParseEmail(EmailMessage{From: "a@b.c", Subject: "Rs.100 debited", Date: at})
		assert.Nil(t, rec)
	})
}

func TestParseEmails_BatchBound(t *testing.T) {
	t.Run("default bound", func(t *testing.T) {
		p := newTestPipeline(t)
		msgs := make([]EmailMessage, defaultEmailBatch+50)
		for i := range msgs {
			msgs[i] = transactionMail()
		}
		records := p.ParseEmails(msgs)
		assert.Len(t, records, defaultEmailBatch, "batch is clamped before processing")
	})

	t.Run("configured bound", func(t *testing.T) {
		p := NewPipeline(patterns.New(), WithEmailBatchLimit(10))
		msgs := make([]EmailMessage, 25)
		for i := range msgs {
			msgs[i] = transactionMail()
		}
		records := p.ParseEmails(msgs)
		assert.Len(t, records, 10)
	})
}

func transactionMail() EmailMessage {
	return EmailMessage{
		From:     "alerts@bank.example",
		Subject:  "Alert",
		Date:     time.Now(),
		TextBody: "Rs.100.00 debited from your account via UPI",
	}
}

func TestStripHTML(t *testing.T) {
	t.Run("drops script and style content", func(t *testing.T) {
		out := StripHTML(`<script>alert("x")</script><p>Rs.100 paid</p>`)
		assert.Equal(t, "Rs.100 paid", out)
	})

	t.Run("decodes entities", func(t *testing.T) {
		out := StripHTML(`<p>Tom&nbsp;&amp;&nbsp;Jerry</p>`)
		assert.Equal(t, "Tom & Jerry", out)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", StripHTML(""))
	})
}
