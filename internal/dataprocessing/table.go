package dataprocessing

// Table is the raw, source-named representation of extract rows used from
// unification through validation. Cells are the formatted strings excelize
// returns; an empty string is a missing value. Validation runs against the
// source column names before any renaming happens.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name), or "" when the column is
// absent or the row is ragged.
func (t *Table) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Slice returns a view over rows [start, end). The backing rows are shared;
// callers must not mutate them.
func (t *Table) Slice(start, end int) *Table {
	return &Table{Columns: t.Columns, Rows: t.Rows[start:end]}
}
