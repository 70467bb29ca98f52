package dataset

import "strings"

// Table is a fully materialized dataset: a header plus rows of cells.
// Rows may be shorter than Columns; missing trailing cells read as empty.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Cell
}

// NewTable builds a table, trimming header names.
func NewTable(name string, columns []string, rows [][]Cell) *Table {
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.TrimSpace(col)
	}
	return &Table{Name: name, Columns: header, Rows: rows}
}

// Len returns the number of data rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex finds a column by name. Matching ignores surrounding whitespace;
// when a header repeats, the first occurrence wins.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil {
		return -1, false
	}
	want := strings.TrimSpace(name)
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == want {
			return i, true
		}
	}
	return -1, false
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Value returns the cell at row and column index, or an empty cell when the
// row is shorter than the header.
func (t *Table) Value(row, col int) Cell {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 {
		return Cell{}
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return Cell{}
	}
	return cells[col]
}

func blankRow(cells []Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
