// Package schema resolves raw, caller-shaped input tables into the
// canonical entities the allocation core operates on. Column names are
// matched against ranked candidate lists per logical field; cell values
// are coerced leniently so a malformed cell never fails a batch.
package schema

// Table is a rectangular, string-typed snapshot of an input file or sheet
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table has no data rows
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Cell returns the value at (row, col), or "" when the row is ragged or
// the column was not resolved (col < 0).
func (t Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
