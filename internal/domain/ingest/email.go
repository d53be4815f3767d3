package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/finsift/finsift/internal/domain/extract"
	"github.com/finsift/finsift/internal/domain/record"
)

// defaultEmailBatch bounds the number of messages processed per request; the
// collaborator's search query pre-filters for transaction-relevant mail.
const defaultEmailBatch = 500

const snippetLimit = 200

// EmailMessage is one decoded email handed to the adapter. The collaborator
// is responsible for fetching and MIME-decoding; the adapter only picks a
// body and extracts.
type EmailMessage struct {
	From     string
	Subject  string
	Date     time.Time
	TextBody string
	HTMLBody string
	Snippet  string
}

var (
	htmlTag      = regexp.MustCompile(`(?s)<(?:script|style)[^>]*>.*?</(?:script|style)>|<[^>]+>`)
	htmlEntities = strings.NewReplacer(
		"&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">",
		"&quot;", `"`, "&#39;", "'",
	)
)

// ParseEmail converts an email into a transaction record, or nil when the
// mail is not a transaction. The gate requires a currency amount and at
// least one debit/credit keyword in the decoded body.
func (p *Pipeline) ParseEmail(msg EmailMessage) *record.TransactionRecord {
	body := decodeBody(msg)
	if body == "" {
		return nil
	}

	text := msg.Subject + " " + body
	if !extract.HasAmount(p.lib, text) {
		return nil
	}
	if !extract.HasDirectionKeyword(p.lib, text) {
		return nil
	}
	return p.build(record.SourceEmail, text, msg.From, msg.Date)
}

// ParseEmails processes a bounded batch, skipping non-transactions.
func (p *Pipeline) ParseEmails(msgs []EmailMessage) []record.TransactionRecord {
	if len(msgs) > p.emailBatch {
		msgs = msgs[:p.emailBatch]
	}
	out := make([]record.TransactionRecord, 0, len(msgs))
	for _, msg := range msgs {
		if rec := p.ParseEmail(msg); rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

// decodeBody prefers the plain-text part, falls back to tag-stripped HTML,
// then to a truncated snippet. An empty return means nothing was decodable.
func decodeBody(msg EmailMessage) string {
	if s := strings.TrimSpace(msg.TextBody); s != "" {
		return s
	}
	if s := strings.TrimSpace(StripHTML(msg.HTMLBody)); s != "" {
		return s
	}
	return record.Truncate(strings.TrimSpace(msg.Snippet), snippetLimit)
}

// StripHTML removes tags (dropping script/style content entirely), decodes
// the common entities, and collapses whitespace.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := htmlTag.ReplaceAllString(html, " ")
	text = htmlEntities.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
