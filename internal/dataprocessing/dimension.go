package dataprocessing

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
)

// refColumns are the columns the stronghold workbook must supply.
var refColumns = []string{
	config.RefColSalesOrg,
	config.RefColSalesOffice,
	config.RefColSalesGroup,
	config.RefColRegion,
	config.RefColStronghold,
}

// LoadStrongholdMap reads the stronghold reference workbook and returns the
// organizational-key to region/stronghold mapping, deduplicated on the
// three-part key keeping the first occurrence. The map is loaded once per
// run and read-only afterward, so batch workers may share it without
// locking.
func LoadStrongholdMap(filePath string, logger *slog.Logger) (map[StrongholdKey]StrongholdEntry, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, apperrors.NewMissingReferenceError(filePath, err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open reference workbook %s", filePath), err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("failed to read sheet %q of %s", sheetName, filePath), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewSchemaError(fmt.Sprintf("reference workbook %s is empty", filePath))
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range refColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("reference workbook missing columns: %v", missing)).
			WithContext("missing_columns", missing)
	}

	cell := func(row []string, col string) string {
		idx := colIdx[col]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	strongholds := make(map[StrongholdKey]StrongholdEntry)
	duplicates := 0
	for _, row := range rows[1:] {
		key := StrongholdKey{
			SalesOrg:    cell(row, config.RefColSalesOrg),
			SalesOffice: cell(row, config.RefColSalesOffice),
			SalesGroup:  cell(row, config.RefColSalesGroup),
		}
		if _, exists := strongholds[key]; exists {
			duplicates++
			continue
		}
		strongholds[key] = StrongholdEntry{
			Region:     cell(row, config.RefColRegion),
			Stronghold: cell(row, config.RefColStronghold),
		}
	}

	logger.Info("stronghold map loaded",
		slog.String("path", filePath),
		slog.Int("entries", len(strongholds)),
		slog.Int("duplicate_keys_skipped", duplicates))

	return strongholds, nil
}
