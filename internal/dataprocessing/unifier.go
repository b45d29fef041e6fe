package dataprocessing

import (
	"fmt"
	"log/slog"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
	"cdmcli/internal/files"
)

// Unifier discovers the source extract workbooks and merges them into one
// table, deduplicated by the transaction document identifier.
type Unifier struct {
	discovery *files.Discovery
	sheetName string
	rules     *config.Rules
	logger    *slog.Logger
}

// NewUnifier creates a unifier over the given discovery instance.
func NewUnifier(discovery *files.Discovery, sheetName string, rules *config.Rules, logger *slog.Logger) *Unifier {
	return &Unifier{
		discovery: discovery,
		sheetName: sheetName,
		rules:     rules,
		logger:    logger,
	}
}

// UnifyResult carries the merged table plus the unification counters for
// the run summary.
type UnifyResult struct {
	Table             *Table
	FilesRead         int
	RowsLoaded        int
	DuplicatesRemoved int
}

// LoadAndMergeSources reads the configured sheet from every eligible
// workbook, concatenates the rows over the union of columns, and keeps the
// first occurrence of each document identifier. Discovery returns files in
// ascending name order, which makes first-seen deterministic.
func (u *Unifier) LoadAndMergeSources() (*UnifyResult, error) {
	sources, err := u.discovery.FindSourceWorkbooks()
	if err != nil {
		return nil, apperrors.NewStorageError("source discovery failed", err)
	}
	if len(sources) == 0 {
		return nil, apperrors.NewNoInputFilesError(u.discovery.DataDir())
	}

	var tables []*Table
	rowsLoaded := 0
	for _, src := range sources {
		table, err := ReadSheet(src.Path, u.sheetName, u.rules)
		if err != nil {
			return nil, err
		}
		u.logger.Info("source file loaded",
			slog.String("file", src.Name),
			slog.Int("rows", table.NumRows()))
		rowsLoaded += table.NumRows()
		tables = append(tables, table)
	}

	combined := concatTables(tables)

	docIdx := combined.ColumnIndex(config.ColDocumentID)
	if docIdx < 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("document identifier column %q absent from all source files", config.ColDocumentID))
	}

	deduped := NewTable(combined.Columns)
	seen := make(map[string]bool, combined.NumRows())
	for _, row := range combined.Rows {
		id := row[docIdx]
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped.Rows = append(deduped.Rows, row)
	}

	duplicates := combined.NumRows() - deduped.NumRows()
	u.logger.Info("sources unified",
		slog.Int("files", len(sources)),
		slog.Int("rows_before", combined.NumRows()),
		slog.Int("rows_after", deduped.NumRows()),
		slog.Int("duplicates_removed", duplicates))

	return &UnifyResult{
		Table:             deduped,
		FilesRead:         len(sources),
		RowsLoaded:        rowsLoaded,
		DuplicatesRemoved: duplicates,
	}, nil
}

// concatTables concatenates tables over the union of their columns, in
// first-appearance order. Cells for columns a table lacks read as empty,
// which downstream stages treat as missing values.
func concatTables(tables []*Table) *Table {
	var columns []string
	position := make(map[string]int)
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := position[c]; !ok {
				position[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}

	combined := NewTable(columns)
	for _, t := range tables {
		for _, row := range t.Rows {
			aligned := make([]string, len(columns))
			for i, c := range t.Columns {
				if i < len(row) {
					aligned[position[c]] = row[i]
				}
			}
			combined.Rows = append(combined.Rows, aligned)
		}
	}
	return combined
}
