package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
)

// ReadSheet reads the named sheet of a workbook into a Table. The first row
// is the header; legacy column names are resolved to their current
// equivalents via the rules' alias table. Data rows are padded to the header
// width so missing trailing cells read as empty.
func ReadSheet(filePath, sheetName string, rules *config.Rules) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filePath), err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("sheet %q not found in %s", sheetName, filePath), err)
	}

	if len(rows) == 0 {
		return NewTable(nil), nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = rules.ResolveAlias(strings.TrimSpace(name))
	}

	table := NewTable(header)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}

	return table, nil
}

// dateLayouts are the creation-date formats observed across extract
// generations. excelize returns the formatted cell value, so the layout
// depends on the workbook's cell style.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"02-Jan-06",
	"Jan 2, 2006",
}

// parseDate parses a creation-date cell. Unformatted date cells come back
// as Excel serial numbers (days since 1899-12-30), so those are accepted
// too.
func parseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		days := math.Floor(serial)
		return epoch.AddDate(0, 0, int(days)), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date value %q", value)
}
