package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ndsreport/internal/dataset"
	"ndsreport/internal/reconcile"
	"ndsreport/internal/testsupport"
)

func TestPreviewRendersSelectedView(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreeMonthScenario())

	out, _, err := runCLI(t, []string{"preview", "--view", "summary"}, env.configPath)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	lower := strings.ToLower(out)
	for _, want := range []string{"summary", "beta", "gamma", "2 of 2 rows"} {
		requireContains(t, lower, want)
	}
	if strings.Contains(lower, "alpha") {
		t.Fatalf("organization without gaps must not appear in Summary: %q", out)
	}
}

func TestPreviewUnknownView(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreeMonthScenario())

	_, _, err := runCLI(t, []string{"preview", "--view", "Totals"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), `unknown view "Totals"`) {
		t.Fatalf("expected unknown view error, got %v", err)
	}
}

func TestPreviewJSONHonoursLimit(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreeMonthScenario())

	out, _, err := runCLI(t, []string{"preview", "--json", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	var views []viewJSON
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode views: %v (%q)", err, out)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	roster := views[0]
	if roster.Name != reconcile.RosterViewName || roster.Total != 3 {
		t.Fatalf("unexpected roster view %+v", roster)
	}
	if diff := cmp.Diff([][]string{{"1", "Alpha"}}, roster.Rows); diff != "" {
		t.Fatalf("roster rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewRejectsNegativeLimit(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreeMonthScenario())

	if _, _, err := runCLI(t, []string{"preview", "--limit", "-1"}, env.configPath); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestNumericColumn(t *testing.T) {
	view := reconcile.View{
		Name:    "Summary",
		Columns: []string{"Organization", "Name", "Months"},
		Rows: [][]dataset.Cell{
			{dataset.Text("A-1"), dataset.Text("Alpha"), dataset.Int(2)},
			{dataset.Number(7), dataset.Text("Beta"), dataset.Int(1)},
		},
	}
	got := []bool{numericColumn(view, 0), numericColumn(view, 1), numericColumn(view, 2)}
	if diff := cmp.Diff([]bool{false, false, true}, got); diff != "" {
		t.Fatalf("numericColumn mismatch (-want +got):\n%s", diff)
	}
	if numericColumn(reconcile.View{Columns: []string{"Months"}}, 0) {
		t.Fatal("empty column must not be treated as numeric")
	}
}
