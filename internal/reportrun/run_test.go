package reportrun_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"ndsreport/internal/config"
	"ndsreport/internal/logging"
	"ndsreport/internal/reconcile"
	"ndsreport/internal/render"
	"ndsreport/internal/reportrun"
	"ndsreport/internal/testsupport"
)

func jsonLogger(t *testing.T) (*bytes.Buffer, reportrun.Options) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return &buf, reportrun.Options{Logger: logger}
}

func TestRunWritesReport(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	logs, opts := jsonLogger(t)

	result, err := reportrun.Run(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Fatalf("expected UUID run id, got %q", result.RunID)
	}
	if result.OutputPath != cfg.OutputPath() {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}

	want := map[string][][]string{
		"Entity_SelfList":             {{"Organization", "Name"}, {"1", "Alpha"}, {"2", "Beta"}, {"3", "Gamma"}},
		"Last 3 Months Not Submitted": {{"Organization", "Name"}, {"3", "Gamma"}},
		"Summary":                     {{"Organization", "Name", "Months"}, {"2", "Beta", "2"}, {"3", "Gamma", "3"}},
	}
	for sheet, rows := range want {
		if diff := cmp.Diff(rows, testsupport.Cells(t, result.OutputPath, sheet)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", sheet, diff)
		}
	}

	if !strings.Contains(logs.String(), `"event_type":"run_complete"`) {
		t.Fatalf("expected run_complete log, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"run_id":"`+result.RunID+`"`) {
		t.Fatalf("expected run id on log lines, got %s", logs.String())
	}

	runLog, err := os.ReadFile(result.RunLogPath)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(runLog), result.RunID) || !strings.Contains(string(runLog), "dataset loaded") {
		t.Fatalf("run log should hold debug lines for this run, got %s", runLog)
	}
}

func TestRunDryRunSkipsWrite(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	_, opts := jsonLogger(t)
	opts.DryRun = true

	result, err := reportrun.Run(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.OutputPath != "" || !result.DryRun {
		t.Fatalf("dry run should not report an output path: %+v", result)
	}
	if _, err := os.Stat(cfg.OutputPath()); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write the report, stat err=%v", err)
	}
	if len(result.Report.Summary) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(result.Report.Summary))
	}
}

func TestRunMissingPeriodWarnsByDefault(t *testing.T) {
	periods := testsupport.ScenarioPeriods()
	periods[2].Records = nil
	cfg := testsupport.NewConfig(t, testsupport.WithCSVInputs(testsupport.ScenarioMaster(), periods...))
	logs, opts := jsonLogger(t)

	result, err := reportrun.Run(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(logs.String(), `"event_type":"period_missing"`) {
		t.Fatalf("expected period_missing warning, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"dataset":"May"`) {
		t.Fatalf("expected warning tagged with the period, got %s", logs.String())
	}
	for _, row := range result.Report.Summary {
		if row.ID == "1" && row.Months != 1 {
			t.Fatalf("organization 1 should miss only the absent period, got %d", row.Months)
		}
	}
}

func TestRunMissingPeriodFailsWhenRequired(t *testing.T) {
	periods := testsupport.ScenarioPeriods()
	periods[0].Records = nil
	cfg := testsupport.NewConfig(t,
		testsupport.WithCSVInputs(testsupport.ScenarioMaster(), periods...),
		testsupport.WithRequireAllPeriods(),
	)
	_, opts := jsonLogger(t)

	_, err := reportrun.Run(context.Background(), cfg, opts)
	if !errors.Is(err, reconcile.ErrPeriodMissing) {
		t.Fatalf("expected ErrPeriodMissing, got %v", err)
	}
	if kind := reconcile.Kind(err); kind != reconcile.KindUsage {
		t.Fatalf("expected usage kind, got %q", kind)
	}
	if _, statErr := os.Stat(cfg.OutputPath()); !os.IsNotExist(statErr) {
		t.Fatal("failed run must not write a report")
	}
}

func TestRunSchemaError(t *testing.T) {
	master := [][]string{{"Organization", "Title"}, {"1", "Alpha"}}
	cfg := testsupport.NewConfig(t, testsupport.WithCSVInputs(master, testsupport.ScenarioPeriods()...))
	_, opts := jsonLogger(t)

	_, err := reportrun.Run(context.Background(), cfg, opts)
	var schemaErr *reconcile.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "Name" || schemaErr.Dataset != "master" {
		t.Fatalf("unexpected schema error: %+v", schemaErr)
	}
}

func TestRunLoadError(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	cfg.Periods[1].Path = filepath.Join(testsupport.BaseDir(cfg), "missing.xlsx")
	_, opts := jsonLogger(t)

	_, err := reportrun.Run(context.Background(), cfg, opts)
	var loadErr *reportrun.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Dataset != "April" {
		t.Fatalf("unexpected dataset %q", loadErr.Dataset)
	}
	if reconcile.Kind(err) != reportrun.KindInput {
		t.Fatalf("expected input kind, got %q", reconcile.Kind(err))
	}
}

func TestRunInvalidInputs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, opts := jsonLogger(t)

	_, err := reportrun.Run(context.Background(), cfg, opts)
	var inputsErr *reportrun.InputsError
	if !errors.As(err, &inputsErr) {
		t.Fatalf("expected InputsError, got %v", err)
	}
	if reconcile.Kind(err) != reconcile.KindUsage {
		t.Fatalf("expected usage kind, got %q", reconcile.Kind(err))
	}
}

func TestRunInputOverrides(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	_, opts := jsonLogger(t)
	inputs := config.Inputs{Master: cfg.Master, Periods: cfg.Periods[1:]}
	opts.Inputs = &inputs
	opts.OutputPath = filepath.Join(testsupport.BaseDir(cfg), "custom", "two.xlsx")

	result, err := reportrun.Run(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.OutputPath != opts.OutputPath {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}
	rows := testsupport.Cells(t, result.OutputPath, "Last 2 Months Not Submitted")
	if diff := cmp.Diff([][]string{{"Organization", "Name"}, {"3", "Gamma"}}, rows); diff != "" {
		t.Fatalf("never-submitted mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTypeMismatch(t *testing.T) {
	periods := []testsupport.PeriodData{
		{Label: "March", Records: [][]string{{"Organization"}, {"1"}, {"X9"}}},
	}
	lenient := testsupport.NewConfig(t, testsupport.WithCSVInputs(testsupport.ScenarioMaster(), periods...))
	logs, opts := jsonLogger(t)
	if _, err := reportrun.Run(context.Background(), lenient, opts); err != nil {
		t.Fatalf("lenient run returned error: %v", err)
	}
	if !strings.Contains(logs.String(), `"event_type":"type_mismatch"`) {
		t.Fatalf("expected type_mismatch warning, got %s", logs.String())
	}

	strict := testsupport.NewConfig(t,
		testsupport.WithCSVInputs(testsupport.ScenarioMaster(), periods...),
		testsupport.WithStrictTypes(),
	)
	_, opts = jsonLogger(t)
	_, err := reportrun.Run(context.Background(), strict, opts)
	var mismatch *reconcile.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	_, opts := jsonLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := reportrun.Run(ctx, cfg, opts); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunReportLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	held := flock.New(render.LockPath(cfg.OutputPath()))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock() //nolint:errcheck

	_, opts := jsonLogger(t)
	if _, err := reportrun.Run(context.Background(), cfg, opts); !errors.Is(err, render.ErrReportLocked) {
		t.Fatalf("expected ErrReportLocked, got %v", err)
	}
}

func TestRunPrunesOldRunLogs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	cfg.Logging.RetentionDays = 1
	runsDir := filepath.Join(cfg.Paths.LogDir, "runs")
	stale := filepath.Join(runsDir, "ndsreport-20200101T000000-deadbeef.log")
	if err := os.MkdirAll(runsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().AddDate(0, 0, -3)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	_, opts := jsonLogger(t)
	result, err := reportrun.Run(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale run log pruned, stat err=%v", err)
	}
	if _, err := os.Stat(result.RunLogPath); err != nil {
		t.Fatalf("current run log must survive: %v", err)
	}
}

func TestReconcileForPreview(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThreeMonthScenario())
	report, err := reportrun.Reconcile(context.Background(), cfg, cfg.Inputs(), nil)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(report.NeverSubmitted) != 1 || report.NeverSubmitted[0].Name != "Gamma" {
		t.Fatalf("unexpected never-submitted rows: %+v", report.NeverSubmitted)
	}
	if _, err := os.Stat(cfg.OutputPath()); !os.IsNotExist(err) {
		t.Fatal("Reconcile must not write the report")
	}
}
