package dataset_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ndsreport/internal/dataset"
	"ndsreport/internal/testsupport"
)

func TestLoadCSVInfersNumericColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	testsupport.WriteCSV(t, path, [][]string{
		{"Organization", "Name", "Region"},
		{"101", "Alpha", "North"},
		{"102", "Beta", ""},
		{"", "", ""},
		{"103", "Gamma", "South"},
	})

	table, err := dataset.Load(path, dataset.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Name != "master.csv" {
		t.Fatalf("expected table name from file, got %q", table.Name)
	}
	if table.Len() != 3 {
		t.Fatalf("expected blank row to be skipped, got %d rows", table.Len())
	}
	org, ok := table.ColumnIndex("Organization")
	if !ok {
		t.Fatal("expected Organization column")
	}
	name, _ := table.ColumnIndex("Name")
	if got := table.Value(0, org); got.Kind != dataset.KindNumber || got.Raw != "101" {
		t.Fatalf("unexpected id cell: %+v", got)
	}
	if got := table.Value(2, name); got.Kind != dataset.KindString || got.Raw != "Gamma" {
		t.Fatalf("unexpected name cell: %+v", got)
	}
	region, _ := table.ColumnIndex("Region")
	if got := table.Value(1, region); !got.IsEmpty() {
		t.Fatalf("expected empty region, got %+v", got)
	}
}

func TestLoadCSVMixedColumnStaysText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "april.csv")
	testsupport.WriteCSV(t, path, [][]string{
		{"\ufeffOrganization"},
		{"7"},
		{"A7"},
	})

	table, err := dataset.Load(path, dataset.Options{Name: "April"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Name != "April" {
		t.Fatalf("expected explicit name, got %q", table.Name)
	}
	col, ok := table.ColumnIndex("Organization")
	if !ok {
		t.Fatalf("expected BOM to be stripped from header, got %q", table.Columns)
	}
	for row := 0; row < table.Len(); row++ {
		if kind := table.Value(row, col).Kind; kind != dataset.KindString {
			t.Fatalf("row %d: expected string kind, got %s", row, kind)
		}
	}
}

func TestLoadXLSXReadsCellKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.xlsx")
	testsupport.WriteWorkbook(t, path, "", [][]any{
		{"Organization", "Name"},
		{1, "Alpha"},
		{"B-2", "Beta"},
		{3.5, "Gamma"},
	})

	table, err := dataset.Load(path, dataset.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	col, _ := table.ColumnIndex("Organization")
	cases := []struct {
		row  int
		kind dataset.Kind
		text string
	}{
		{0, dataset.KindNumber, "1"},
		{1, dataset.KindString, "B-2"},
		{2, dataset.KindNumber, "3.5"},
	}
	for _, tc := range cases {
		got := table.Value(tc.row, col)
		if got.Kind != tc.kind {
			t.Fatalf("row %d: expected kind %s, got %s", tc.row, tc.kind, got.Kind)
		}
		if got.String() != tc.text {
			t.Fatalf("row %d: expected %q, got %q", tc.row, tc.text, got.String())
		}
	}
}

func TestLoadXLSXSelectsNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "march.xlsx")
	testsupport.WriteWorkbook(t, path, "Submissions", [][]any{
		{"Organization"},
		{10},
	})

	table, err := dataset.Load(path, dataset.Options{Sheet: "Submissions"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}

	_, err = dataset.Load(path, dataset.Options{Sheet: "Missing"})
	if err == nil || !strings.Contains(err.Error(), "Missing") {
		t.Fatalf("expected missing sheet error, got %v", err)
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "master.ods"), dataset.Options{})
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTableValueToleratesShortRows(t *testing.T) {
	table := dataset.NewTable("short", []string{" Organization ", "Name"}, [][]dataset.Cell{
		{dataset.Int(1)},
	})
	if !table.HasColumn("Organization") {
		t.Fatal("expected header names to be trimmed")
	}
	if got := table.Value(0, 1); !got.IsEmpty() {
		t.Fatalf("expected empty cell for short row, got %+v", got)
	}
	var missing *dataset.Table
	if missing.Len() != 0 {
		t.Fatal("expected nil table to have no rows")
	}
}

func TestCellStringDropsIntegralFraction(t *testing.T) {
	if got := dataset.Number(101).String(); got != "101" {
		t.Fatalf("expected 101, got %q", got)
	}
	if got := (dataset.Cell{Raw: "101.0", Kind: dataset.KindNumber}).String(); got != "101" {
		t.Fatalf("expected 101, got %q", got)
	}
	if got := dataset.Text("  ").Kind; got != dataset.KindEmpty {
		t.Fatalf("expected blank text to be empty, got %s", got)
	}
}
