package ingest

import (
	"encoding/csv"
	"strings"

	"github.com/gocarina/gocsv"
)

// headerSearchDepth bounds how far into a file we look for the header row;
// bank exports often open with account metadata before the table.
const headerSearchDepth = 20

// statementCSVRow is a raw CSV row unmarshaled by header name. The tags
// cover the column names Indian bank exports actually use; headers are
// lowercased before unmarshaling so matching is case-insensitive.
type statementCSVRow struct {
	Date      string `csv:"date"`
	TxnDate   string `csv:"txn date"`
	TranDate  string `csv:"transaction date"`
	ValueDate string `csv:"value date"`

	Narration   string `csv:"narration"`
	Description string `csv:"description"`
	Particulars string `csv:"particulars"`
	Details     string `csv:"details"`
	Remarks     string `csv:"remarks"`

	Withdrawal    string `csv:"withdrawal amt."`
	Withdrawal2   string `csv:"withdrawal"`
	Debit         string `csv:"debit"`
	Deposit       string `csv:"deposit amt."`
	Deposit2      string `csv:"deposit"`
	Credit        string `csv:"credit"`
	Amount        string `csv:"amount"`
	Balance       string `csv:"balance"`
	ClosingBal    string `csv:"closing balance"`
	ReferenceNo   string `csv:"ref no."`
	ChequeRefNo   string `csv:"chq./ref.no."`
	ReferenceNo2  string `csv:"reference no"`
	ReferenceNo3  string `csv:"reference number"`
}

// ImportCSV parses a CSV bank statement export. A file it cannot make
// sense of yields an empty result, never an error.
func (p *Pipeline) ImportCSV(data []byte) *Result {
	lines := splitLines(string(data))
	headerIdx, delimiter := findCSVHeader(lines)
	if headerIdx < 0 {
		p.log.Debug("csv import: no header row found", "lines", len(lines))
		return &Result{SkippedRows: len(lines), TotalRows: len(lines)}
	}

	// Lowercase the header line so struct tags match regardless of the
	// bank's capitalization.
	body := strings.ToLower(lines[headerIdx]) + "\n" + strings.Join(lines[headerIdx+1:], "\n")

	reader := csv.NewReader(strings.NewReader(body))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []statementCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		p.log.Debug("csv import: unmarshal failed", "error", err)
		return &Result{SkippedRows: len(lines), TotalRows: len(lines)}
	}

	headers, table := normalizeCSVRows(rows)
	return p.ParseTable(headers, table)
}

// normalizeCSVRows coalesces the per-bank column variants into the
// canonical statement table shape.
func normalizeCSVRows(rows []statementCSVRow) ([]string, [][]string) {
	headers := []string{"date", "description", "debit", "credit", "amount", "balance", "ref no."}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			coalesce(r.Date, r.TxnDate, r.TranDate, r.ValueDate),
			coalesce(r.Narration, r.Description, r.Particulars, r.Details, r.Remarks),
			coalesce(r.Withdrawal, r.Withdrawal2, r.Debit),
			coalesce(r.Deposit, r.Deposit2, r.Credit),
			r.Amount,
			coalesce(r.Balance, r.ClosingBal),
			coalesce(r.ReferenceNo, r.ChequeRefNo, r.ReferenceNo2, r.ReferenceNo3),
		})
	}
	return headers, table
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// findCSVHeader scans the leading lines for the one that looks like a
// statement header: it must mention a date column and at least one other
// statement keyword, and split into multiple columns.
func findCSVHeader(lines []string) (int, rune) {
	otherKw := []string{"narration", "description", "particulars", "details", "remarks",
		"debit", "credit", "withdrawal", "deposit", "amount", "balance"}

	for i, line := range lines {
		if i >= headerSearchDepth {
			break
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "date") || !containsAny(lower, otherKw) {
			continue
		}
		if d, count := detectDelimiter(line); count >= 1 {
			return i, d
		}
	}
	return -1, 0
}

// detectDelimiter picks the candidate delimiter that occurs most often in
// the header line.
func detectDelimiter(line string) (rune, int) {
	best := rune(0)
	bestCount := 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best, bestCount
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
