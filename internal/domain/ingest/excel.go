package ingest

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportXLSX parses an Excel bank statement export. Like ImportCSV, a
// workbook it cannot make sense of yields an empty result.
func (p *Pipeline) ImportXLSX(data []byte) *Result {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		p.log.Debug("xlsx import: open failed", "error", err)
		return &Result{}
	}
	defer f.Close()

	sheet := findStatementSheet(f)
	if sheet == "" {
		return &Result{}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		p.log.Debug("xlsx import: read failed", "sheet", sheet, "error", err)
		return &Result{}
	}

	headerIdx := findSheetHeader(rows)
	if headerIdx < 0 {
		p.log.Debug("xlsx import: no header row found", "sheet", sheet, "rows", len(rows))
		return &Result{SkippedRows: len(rows), TotalRows: len(rows)}
	}
	return p.ParseTable(rows[headerIdx], rows[headerIdx+1:])
}

// findStatementSheet prefers a sheet whose name suggests transaction data,
// falling back to the first sheet.
func findStatementSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	preferred := []string{"transaction", "statement", "txn"}
	for _, name := range sheets {
		if containsAny(strings.ToLower(name), preferred) {
			return name
		}
	}
	return sheets[0]
}

// findSheetHeader locates the header row within the leading rows: it must
// name a date column plus at least one other statement column.
func findSheetHeader(rows [][]string) int {
	otherKw := []string{"narration", "description", "particulars", "details", "remarks",
		"debit", "credit", "withdrawal", "deposit", "amount", "balance"}

	for i, row := range rows {
		if i >= headerSearchDepth {
			break
		}
		joined := strings.ToLower(strings.Join(row, " "))
		if strings.Contains(joined, "date") && containsAny(joined, otherKw) {
			return i
		}
	}
	return -1
}
