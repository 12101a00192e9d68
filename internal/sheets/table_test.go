package sheets

import "testing"

func TestNewTable(t *testing.T) {
	table := NewTable([][]any{
		{"Date", "Production", "Collections"},
		{"2025-09-15", 5000.0, 4500.0},
		{"2025-09-16", 5200.0}, // short row: Collections cell absent
		{},                     // blank row skipped
	})

	if len(table.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(table.Columns))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["Production"] != 5000.0 {
		t.Errorf("Expected 5000, got %v", table.Rows[0]["Production"])
	}
	if _, ok := table.Rows[1]["Collections"]; ok {
		t.Errorf("Short row must leave trailing cells absent")
	}
}

func TestNewTable_ExtraCellsIgnored(t *testing.T) {
	table := NewTable([][]any{
		{"Date"},
		{"2025-09-15", "stray"},
	})

	if len(table.Rows[0]) != 1 {
		t.Errorf("Cells beyond the header width must be dropped, got %v", table.Rows[0])
	}
}

func TestNewTable_Empty(t *testing.T) {
	table := NewTable(nil)
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("Empty grid should yield empty table, got %+v", table)
	}
}

func TestNewTable_NonStringHeaders(t *testing.T) {
	table := NewTable([][]any{
		{"Date", 2025.0, nil},
	})

	if table.Columns[1] != "2025" {
		t.Errorf("Numeric header should stringify, got %q", table.Columns[1])
	}
	if table.Columns[2] != "" {
		t.Errorf("nil header should be empty string, got %q", table.Columns[2])
	}
}

func TestColumnSet(t *testing.T) {
	table := NewTable([][]any{{"A", "B"}})
	set := table.ColumnSet()
	if !set["A"] || !set["B"] || set["C"] {
		t.Errorf("Unexpected column set: %v", set)
	}
}
