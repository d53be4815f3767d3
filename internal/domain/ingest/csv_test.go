package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift/finsift/internal/domain/record"
)

const sampleCSV = `Acme Bank Ltd
Account Statement for XX1234

Date,Narration,Withdrawal Amt.,Deposit Amt.,Closing Balance
15/01/2025,UPI-SWIGGY-BANGALORE,450.00,,"12,000.50"
16/01/2025,NEFT-SALARY-ACME CORP,,"75,000.00","87,000.50"
17/01/2025,Opening Balance,,,"87,000.50"
`

func TestImportCSV(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("parses rows under a detected header", func(t *testing.T) {
		res := p.ImportCSV([]byte(sampleCSV))
		require.Len(t, res.Records, 2)
		assert.Equal(t, 2, res.ParsedRows)
		assert.Equal(t, 1, res.SkippedRows)

		assert.Equal(t, record.Debit, res.Records[0].Direction)
		assert.Equal(t, "Swiggy", res.Records[0].Merchant)
		assert.Equal(t, record.Credit, res.Records[1].Direction)
		assert.Equal(t, "75000", res.Records[1].Amount.String())
	})

	t.Run("semicolon delimiter", func(t *testing.T) {
		data := "Date;Description;Amount\n15/01/2025;POS DMART;-899.00\n"
		res := p.ImportCSV([]byte(data))
		require.Len(t, res.Records, 1)
		assert.Equal(t, "899", res.Records[0].Amount.String())
		assert.Equal(t, record.Debit, res.Records[0].Direction)
	})

	t.Run("case-insensitive headers", func(t *testing.T) {
		data := "DATE,DESCRIPTION,AMOUNT\n15/01/2025,FUEL HPCL,-500.00\n"
		res := p.ImportCSV([]byte(data))
		require.Len(t, res.Records, 1)
		assert.Equal(t, record.CategoryFuel, res.Records[0].Category)
	})

	t.Run("reference column carried through", func(t *testing.T) {
		data := "Date,Narration,Chq./Ref.No.,Withdrawal Amt.,Deposit Amt.\n" +
			"15/01/2025,UPI-SWIGGY-BANGALORE,UPI/500123456789,450.00,\n"
		res := p.ImportCSV([]byte(data))
		require.Len(t, res.Records, 1)
		assert.Equal(t, "UPI/500123456789", res.Records[0].ReferenceNo)
	})

	t.Run("garbage yields empty result, not an error", func(t *testing.T) {
		res := p.ImportCSV([]byte("this is not a statement\nat all"))
		assert.Empty(t, res.Records)
	})

	t.Run("empty input", func(t *testing.T) {
		res := p.ImportCSV(nil)
		assert.Empty(t, res.Records)
	})
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"Date,Narration,Amount", ','},
		{"Date;Narration;Amount", ';'},
		{"Date\tNarration\tAmount", '\t'},
		{"Date|Narration|Amount", '|'},
	}
	for _, tt := range tests {
		d, _ := detectDelimiter(tt.line)
		assert.Equal(t, tt.want, d, tt.line)
	}
}
