package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsift/finsift/internal/domain/classify"
	"github.com/finsift/finsift/internal/domain/extract"
	"github.com/finsift/finsift/internal/domain/record"
)

const minDescriptionLen = 3

// maxStatementRefLen caps reference numbers read from a dedicated column,
// matching the bound the free-text extractor applies.
const maxStatementRefLen = 30

// Result aggregates one statement import: the emitted records plus row
// accounting for the caller's "found N transactions" message.
type Result struct {
	Records     []record.TransactionRecord
	TotalRows   int
	ParsedRows  int
	SkippedRows int
}

// columnMap holds detected column indices for a tabular statement; -1 means
// the column is absent.
type columnMap struct {
	dateCol    int
	descCol    int
	debitCol   int
	creditCol  int
	amountCol  int
	balanceCol int
	refCol     int
}

// mapColumns builds the column map once per file by case-insensitive
// substring search over the header names.
func mapColumns(headers []string) columnMap {
	cm := columnMap{dateCol: -1, descCol: -1, debitCol: -1, creditCol: -1, amountCol: -1, balanceCol: -1, refCol: -1}

	dateKw := []string{"date"}
	descKw := []string{"description", "narration", "particulars", "details", "remarks", "transaction"}
	debitKw := []string{"debit", "withdrawal", "dr"}
	creditKw := []string{"credit", "deposit", "cr"}
	amountKw := []string{"amount", "value"}
	balanceKw := []string{"balance"}
	refKw := []string{"ref", "cheque", "chq"}

	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			continue
		}
		switch {
		case cm.dateCol < 0 && containsAny(h, dateKw):
			cm.dateCol = i
		case cm.descCol < 0 && containsAny(h, descKw):
			cm.descCol = i
		case cm.debitCol < 0 && containsAny(h, debitKw):
			cm.debitCol = i
		case cm.creditCol < 0 && containsAny(h, creditKw):
			cm.creditCol = i
		// "value date" must not bind the amount column
		case cm.amountCol < 0 && containsAny(h, amountKw) && !strings.Contains(h, "date"):
			cm.amountCol = i
		case cm.balanceCol < 0 && containsAny(h, balanceKw):
			cm.balanceCol = i
		case cm.refCol < 0 && containsAny(h, refKw):
			cm.refCol = i
		}
	}
	return cm
}

func (cm columnMap) usable() bool {
	if cm.dateCol < 0 || cm.descCol < 0 {
		return false
	}
	return cm.amountCol >= 0 || cm.debitCol >= 0 || cm.creditCol >= 0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ParseTable processes tabular statement rows under a detected header. Rows
// that fail a gate are counted as skipped, never as errors.
func (p *Pipeline) ParseTable(headers []string, rows [][]string) *Result {
	res := &Result{}
	cm := mapColumns(headers)
	if !cm.usable() {
		res.SkippedRows = len(rows)
		res.TotalRows = len(rows)
		return res
	}

	for _, row := range rows {
		res.TotalRows++
		rec := p.parseTableRow(cm, row)
		if rec == nil {
			res.SkippedRows++
			continue
		}
		res.Records = append(res.Records, *rec)
		res.ParsedRows++
	}
	return res
}

func (p *Pipeline) parseTableRow(cm columnMap, row []string) *record.TransactionRecord {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, ok := p.parseStatementDate(cell(cm.dateCol))
	if !ok {
		return nil
	}

	desc := cell(cm.descCol)
	if len(desc) < minDescriptionLen || p.lib.IsNoise(desc) {
		return nil
	}

	amount, direction, ok := p.resolveRowAmount(cm, cell, desc)
	if !ok || !p.amountInBounds(amount) {
		return nil
	}

	merchant := extract.Merchant(p.lib, desc, "")
	category, invType := classify.Category(p.lib, desc, merchant)

	// A dedicated reference column beats whatever the description yields.
	refNo := record.Truncate(cell(cm.refCol), maxStatementRefLen)
	if refNo == "" {
		refNo = extract.Reference(p.lib, desc)
	}

	rec := &record.TransactionRecord{
		ID:             uuid.New(),
		RawText:        record.Truncate(desc, record.MaxRawTextLen),
		Source:         record.SourceStatement,
		Timestamp:      date.UnixMilli(),
		Amount:         amount,
		Direction:      direction,
		Category:       category,
		InvestmentType: invType,
		Merchant:       merchant,
		PaymentMethod:  extract.PaymentMethod(desc),
		ReferenceNo:    refNo,
	}
	if bal := parseCellAmount(cell(cm.balanceCol)); bal != nil {
		rec.BalanceAfter = bal
	}
	rec.Summary = record.BuildSummary(rec)

	if err := rec.Validate(); err != nil {
		return nil
	}
	return rec
}

// resolveRowAmount reads the debit/credit pair when present (the column
// decides the direction), otherwise the single amount column: a negative
// value is a debit, a positive one defers to the keyword classifier with
// its usual DEBIT default.
func (p *Pipeline) resolveRowAmount(cm columnMap, cell func(int) string, desc string) (decimal.Decimal, record.Direction, bool) {
	if cm.debitCol >= 0 || cm.creditCol >= 0 {
		if d := parseCellAmount(cell(cm.debitCol)); d != nil && d.IsPositive() {
			return *d, record.Debit, true
		}
		if c := parseCellAmount(cell(cm.creditCol)); c != nil && c.IsPositive() {
			return *c, record.Credit, true
		}
		if cm.amountCol < 0 {
			return decimal.Decimal{}, record.Debit, false
		}
	}

	a := parseCellAmount(cell(cm.amountCol))
	if a == nil || a.IsZero() {
		return decimal.Decimal{}, record.Debit, false
	}
	if a.IsNegative() {
		return a.Neg(), record.Debit, true
	}
	return *a, extract.Direction(p.lib, desc), true
}

// parseCellAmount parses a statement cell into a decimal, stripping
// currency decoration and thousands separators. Returns nil when the cell
// is empty or not numeric.
func parseCellAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.Trim(s, "()")
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return -1
	}, strings.ReplaceAll(s, ",", ""))
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	if neg {
		d = d.Neg()
	}
	return &d
}

// parseStatementDate tries the fixed-priority layout list with strict
// parsing; the first layout that parses wins.
func (p *Pipeline) parseStatementDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range p.lib.DateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseLines processes free-text statement lines extracted from a page-based
// document. A line must carry both a parseable date token and an amount to
// qualify.
func (p *Pipeline) ParseLines(lines []string) *Result {
	res := &Result{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res.TotalRows++

		rec := p.parseFreeLine(line)
		if rec == nil {
			res.SkippedRows++
			continue
		}
		res.Records = append(res.Records, *rec)
		res.ParsedRows++
	}
	return res
}

func (p *Pipeline) parseFreeLine(line string) *record.TransactionRecord {
	loc := p.lib.DateToken.FindStringIndex(line)
	if loc == nil {
		return nil
	}
	date, ok := p.parseStatementDate(line[loc[0]:loc[1]])
	if !ok {
		return nil
	}

	desc := strings.TrimSpace(line[:loc[0]] + " " + line[loc[1]:])
	if len(desc) < minDescriptionLen || p.lib.IsNoise(desc) {
		return nil
	}
	if !extract.HasAmount(p.lib, desc) {
		return nil
	}
	return p.build(record.SourceStatement, desc, "", date)
}
