package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"ndsreport/internal/config"
	"ndsreport/internal/render"
	"ndsreport/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckDirectoryAccess("test", f).Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_Missing(t *testing.T) {
	result := CheckOutputDirectory("out", filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("expected creatable directory to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckOutputDirectory_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckOutputDirectory("out", filepath.Join(f, "sub")).Passed {
		t.Fatal("expected failure when an ancestor is a file")
	}
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "may.csv")
	testsupport.WriteCSV(t, csvPath, [][]string{{"Organization"}, {"1"}})
	txtPath := filepath.Join(dir, "may.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		pass bool
	}{
		{"readable csv", csvPath, true},
		{"missing", filepath.Join(dir, "nope.csv"), false},
		{"directory", dir, false},
		{"unsupported", txtPath, false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckInputFile("input", tt.path); got.Passed != tt.pass {
				t.Fatalf("Passed = %v, want %v (%s)", got.Passed, tt.pass, got.Detail)
			}
		})
	}
}

func TestCheckColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	testsupport.WriteCSV(t, path, [][]string{{"Organization", "Title"}, {"1", "A"}})

	result := CheckColumns("master", config.Input{Label: "master", Path: path}, "Organization", "Name")
	if result.Passed {
		t.Fatal("expected missing Name column to fail")
	}
	if !strings.Contains(result.Detail, "Name") {
		t.Fatalf("expected missing column in detail, got %s", result.Detail)
	}

	result = CheckColumns("master", config.Input{Label: "master", Path: path}, "Organization")
	if !result.Passed || !strings.Contains(result.Detail, "1 row(s)") {
		t.Fatalf("expected pass with row count, got %+v", result)
	}
}

func TestCheckReportLock(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.xlsx")
	if !CheckReportLock("lock", report).Passed {
		t.Fatal("expected free lock")
	}

	held := flock.New(render.LockPath(report))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock() //nolint:errcheck

	if CheckReportLock("lock", report).Passed {
		t.Fatal("expected held lock to fail")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, config.Inputs{}); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "master.csv")
	march := filepath.Join(dir, "march.csv")
	testsupport.WriteCSV(t, master, [][]string{{"Organization", "Name"}, {"1", "A"}})
	testsupport.WriteCSV(t, march, [][]string{{"Organization"}, {"1"}})

	cfg := testsupport.NewConfig(t)
	inputs := config.Inputs{
		Master: config.Input{Label: "master", Path: master},
		Periods: []config.Input{
			{Label: "March", Path: march},
			{Label: "April"},
		},
	}

	results := RunAll(cfg, inputs)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		if !r.Passed {
			t.Fatalf("expected %s to pass, got %s", r.Name, r.Detail)
		}
	}
	want := "Master dataset,Master dataset columns,Period March,Period March columns,Period April,Output directory,Report lock,Log directory"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("unexpected check order:\n got %s\nwant %s", got, want)
	}
	if !Passed(results) {
		t.Fatal("expected all checks to pass")
	}

	cfg.Report.RequireAllPeriods = true
	if Passed(RunAll(cfg, inputs)) {
		t.Fatal("expected missing period to fail when all periods are required")
	}
}
