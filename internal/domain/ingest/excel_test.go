package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finsift/finsift/internal/domain/record"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("parses a statement workbook", func(t *testing.T) {
		data := buildWorkbook(t, "Sheet1", [][]interface{}{
			{"Acme Bank Statement"},
			{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"},
			{"15/01/2025", "UPI-ZOMATO-ORDER", "320.00", "", "9,500.00"},
			{"16/01/2025", "IMPS-REFUND-FLIPKART", "", "1,200.00", "10,700.00"},
		})

		res := p.ImportXLSX(data)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "Zomato", res.Records[0].Merchant)
		assert.Equal(t, record.Debit, res.Records[0].Direction)
		assert.Equal(t, record.Credit, res.Records[1].Direction)
	})

	t.Run("prefers a transactions sheet", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		_, err := f.NewSheet("Transactions")
		require.NoError(t, err)

		header := []interface{}{"Date", "Description", "Amount"}
		row := []interface{}{"15/01/2025", "POS DMART", "-640.00"}
		require.NoError(t, f.SetSheetRow("Transactions", "A1", &header))
		require.NoError(t, f.SetSheetRow("Transactions", "A2", &row))

		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		res := p.ImportXLSX(buf.Bytes())
		require.Len(t, res.Records, 1)
		assert.Equal(t, "640", res.Records[0].Amount.String())
	})

	t.Run("workbook without a header row yields empty result", func(t *testing.T) {
		data := buildWorkbook(t, "Sheet1", [][]interface{}{
			{"just", "some", "cells"},
		})
		res := p.ImportXLSX(data)
		assert.Empty(t, res.Records)
	})

	t.Run("not a workbook yields empty result", func(t *testing.T) {
		res := p.ImportXLSX([]byte("definitely not xlsx"))
		assert.Empty(t, res.Records)
	})
}
