package table

// SourceTable is a dataset as read from disk, before normalization.
// Columns keeps the file's column order; every row has exactly len(Columns) cells.
type SourceTable struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *SourceTable) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1 if the table lacks it.
func (t *SourceTable) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether the table has the named column.
func (t *SourceTable) Has(column string) bool {
	return t.Index(column) >= 0
}

// Cell returns the value at row, col. Out of range lookups return "".
func (t *SourceTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
