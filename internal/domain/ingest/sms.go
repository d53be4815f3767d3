package ingest

import (
	"time"

	"github.com/finsift/finsift/internal/domain/extract"
	"github.com/finsift/finsift/internal/domain/record"
)

// SMSMessage is one device message handed to the adapter by the (external)
// message reader.
type SMSMessage struct {
	Sender     string
	Body       string
	ReceivedAt time.Time
}

// ParseSMS converts a message into a transaction record, or nil when the
// message is not a transaction. Three gates must all pass: a bank-like
// sender, a transaction keyword in the body, and a currency amount in the
// body. Promotional and OTP messages fail at least one of them.
func (p *Pipeline) ParseSMS(msg SMSMessage) *record.TransactionRecord {
	if !p.isTransactionalSender(msg.Sender) {
		return nil
	}
	if !p.lib.HasTransactionKeyword(msg.Body) {
		return nil
	}
	if !extract.HasAmount(p.lib, msg.Body) {
		return nil
	}
	return p.build(record.SourceSMS, msg.Body, msg.Sender, msg.ReceivedAt)
}

// ParseSMSBatch runs ParseSMS over a batch, dropping non-transactions.
func (p *Pipeline) ParseSMSBatch(msgs []SMSMessage) []record.TransactionRecord {
	out := make([]record.TransactionRecord, 0, len(msgs))
	for _, msg := range msgs {
		if rec := p.ParseSMS(msg); rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

// isTransactionalSender accepts senders on the bank/fintech allow-list, or
// carrier short-codes (short, upper-case alphanumeric identifiers such as
// "VM-HDFCBK" or "AX-SBIPSG").
func (p *Pipeline) isTransactionalSender(sender string) bool {
	if sender == "" {
		return false
	}
	if p.lib.IsBankSender(sender) {
		return true
	}
	return isShortCode(sender)
}

func isShortCode(sender string) bool {
	if len(sender) < 3 || len(sender) > 11 {
		return false
	}
	letters := 0
	for _, r := range sender {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return letters >= 2
}
