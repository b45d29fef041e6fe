package dataprocessing

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cdmcli/internal/config"
	"cdmcli/internal/shared/testutil"
)

// writeWorkbook builds a minimal xlsx fixture with one sheet: a header row
// followed by data rows.
func writeWorkbook(t *testing.T, path, sheet string, header []string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, name))
	}
	for rowIdx, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

// sourceHeader is the canonical extract header used by fixtures.
func sourceHeader() []string {
	return []string{
		config.ColDocumentID, config.ColDocType, config.ColDivision,
		config.ColSalesOrg, config.ColSalesOffice, config.ColSalesGroup,
		config.ColCustomerID, config.ColNetValue, config.ColCreatedOn,
	}
}

// sourceRow builds one extract data row matching sourceHeader.
func sourceRow(docID, saTy, dv, sorg, soff, sgrp, customer string, netValue interface{}, createdOn string) []interface{} {
	return []interface{}{docID, saTy, dv, sorg, soff, sgrp, customer, netValue, createdOn}
}

func testRules(t *testing.T) *config.Rules {
	t.Helper()
	return &config.Default().Rules
}

func testLogger(t *testing.T) (*slog.Logger, *testutil.BufferedSlogHandler) {
	t.Helper()
	return testutil.NewTestLogger(t)
}

// rawTable builds an in-memory Table with the canonical source columns.
func rawTable(rows ...[]interface{}) *Table {
	table := NewTable(sourceHeader())
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// testStrongholds is the dimension fixture shared by enrichment tests.
func testStrongholds() map[StrongholdKey]StrongholdEntry {
	return map[StrongholdKey]StrongholdEntry{
		{SalesOrg: "1000", SalesOffice: "O-10", SalesGroup: "G-1"}: {Region: "USA", Stronghold: "US-ACM"},
		{SalesOrg: "2000", SalesOffice: "O-20", SalesGroup: "G-2"}: {Region: "Canada", Stronghold: "CA-ACM"},
	}
}
