package sheets

import "fmt"

// Row maps a raw column name to the raw cell value for one sheet row.
// Values arrive as strings or numbers depending on the backend's formatting.
type Row map[string]any

// Table is a row-oriented snapshot of one fetched sheet range.
// It is immutable once built; downstream consumers only read it.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable converts a raw value grid (header row first) into a Table.
// Short rows are padded implicitly: cells beyond a row's length are simply
// absent from that row's map. A grid without a header yields an empty table.
func NewTable(values [][]any) *Table {
	t := &Table{}
	if len(values) == 0 {
		return t
	}

	for _, h := range values[0] {
		t.Columns = append(t.Columns, toString(h))
	}

	for _, raw := range values[1:] {
		if len(raw) == 0 {
			continue
		}
		row := make(Row, len(t.Columns))
		for i, cell := range raw {
			if i >= len(t.Columns) {
				break
			}
			row[t.Columns[i]] = cell
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// ColumnSet returns the set of column names present in the table.
func (t *Table) ColumnSet() map[string]bool {
	set := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		set[c] = true
	}
	return set
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	// Headers are occasionally numeric in malformed sheets; keep them usable.
	return fmt.Sprintf("%v", v)
}
