package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
)

// Normalizer projects a validated batch onto the internal schema: recognized
// columns only, internal field names, coerced types. It is a pure
// transformation; the row count never changes and re-applying it is a no-op.
type Normalizer struct {
	rules  *config.Rules
	logger *slog.Logger
}

// NewNormalizer creates a normalizer bound to the given business rules.
func NewNormalizer(rules *config.Rules, logger *slog.Logger) *Normalizer {
	return &Normalizer{rules: rules, logger: logger}
}

// Clean converts raw rows into MemoRecords. Net values that fail to parse
// default to 0 - post-validation there should be none - and zero values are
// retained, not treated as invalid.
func (n *Normalizer) Clean(batch *Table) ([]MemoRecord, error) {
	idx := make(map[string]int, len(n.rules.RequiredColumns()))
	for _, col := range n.rules.RequiredColumns() {
		i := batch.ColumnIndex(col)
		if i < 0 {
			return nil, apperrors.NewSchemaError(
				fmt.Sprintf("column %q absent during cleaning", col))
		}
		idx[col] = i
	}

	records := make([]MemoRecord, 0, batch.NumRows())
	zeroValues := 0
	for _, row := range batch.Rows {
		createdOn, err := parseDate(row[idx[config.ColCreatedOn]])
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("unparseable creation date %q", row[idx[config.ColCreatedOn]]), err)
		}

		netValue, err := strconv.ParseFloat(strings.TrimSpace(row[idx[config.ColNetValue]]), 64)
		if err != nil {
			netValue = 0
		}
		if netValue == 0 {
			zeroValues++
		}

		records = append(records, MemoRecord{
			DocType:     strings.TrimSpace(row[idx[config.ColDocType]]),
			Division:    strings.TrimSpace(row[idx[config.ColDivision]]),
			SalesOrg:    row[idx[config.ColSalesOrg]],
			SalesOffice: row[idx[config.ColSalesOffice]],
			SalesGroup:  row[idx[config.ColSalesGroup]],
			CustomerID:  row[idx[config.ColCustomerID]],
			NetValue:    netValue,
			CreatedOn:   createdOn,
		})
	}

	n.logger.Debug("batch cleaned",
		slog.Int("rows", len(records)),
		slog.Int("zero_net_values_retained", zeroValues))

	return records, nil
}
