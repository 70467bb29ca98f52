package reportrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ndsreport/internal/config"
	"ndsreport/internal/dataset"
	"ndsreport/internal/logging"
	"ndsreport/internal/orgid"
	"ndsreport/internal/reconcile"
	"ndsreport/internal/render"
)

const (
	runLogDir     = "runs"
	runLogPattern = "ndsreport-*.log"
	masterLabel   = "master"
)

// Options configures one report run.
type Options struct {
	// Inputs overrides the datasets named in the config when non-nil.
	Inputs *config.Inputs
	// OutputPath overrides cfg.OutputPath() when set.
	OutputPath string
	// DryRun reconciles without writing the workbook.
	DryRun bool
	Logger *slog.Logger
}

// Result describes a finished run.
type Result struct {
	RunID      string
	Report     *reconcile.Report
	OutputPath string
	RunLogPath string
	Elapsed    time.Duration
	DryRun     bool
}

// Run loads the inputs, reconciles them and writes the report.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	started := time.Now()

	inputs := cfg.Inputs()
	if opts.Inputs != nil {
		inputs = *opts.Inputs
	}
	if err := inputs.Validate(); err != nil {
		return nil, &InputsError{Err: err}
	}
	outputPath := strings.TrimSpace(opts.OutputPath)
	if outputPath == "" {
		outputPath = cfg.OutputPath()
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger, runLogPath := runLogger(cfg, opts.Logger, runID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "reportrun"))

	if runLogPath != "" {
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     filepath.Dir(runLogPath),
			Pattern: runLogPattern,
			Exclude: []string{runLogPath},
		})
	}

	logger.Info("report run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.Int(logging.FieldPeriods, len(inputs.Periods)),
		logging.Bool("dry_run", opts.DryRun),
	)

	report, err := reconcileInputs(ctx, cfg, inputs, logger)
	if err != nil {
		logging.ErrorWithContext(logger, "report run failed", "run_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, reconcile.Kind(err)),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return nil, err
	}
	logDiagnostics(logger, report.Diagnostics)

	result := &Result{
		RunID:      runID,
		Report:     report,
		RunLogPath: runLogPath,
		DryRun:     opts.DryRun,
	}
	if !opts.DryRun {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := render.SaveWorkbook(outputPath, report); err != nil {
			logging.ErrorWithContext(logger, "report write failed", "report_write_failed",
				logging.Error(err),
				logging.String(logging.FieldOutputPath, outputPath),
				logging.String(logging.FieldErrorHint, hintFor(err)),
			)
			return nil, fmt.Errorf("write report: %w", err)
		}
		result.OutputPath = outputPath
	}
	result.Elapsed = time.Since(started)

	logger.Info("report run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("organizations", len(report.Roster)),
		logging.Int("never_submitted", len(report.NeverSubmitted)),
		logging.Int("with_gaps", len(report.Summary)),
		logging.String(logging.FieldOutputPath, result.OutputPath),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Reconcile loads inputs and builds the report without writing or logging to
// a per-run file. The preview command uses it.
func Reconcile(ctx context.Context, cfg *config.Config, inputs config.Inputs, logger *slog.Logger) (*reconcile.Report, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := inputs.Validate(); err != nil {
		return nil, &InputsError{Err: err}
	}
	return reconcileInputs(ctx, cfg, inputs, logging.NewComponentLogger(logger, "reportrun"))
}

// NewEngine builds the reconciliation engine described by cfg.
func NewEngine(cfg *config.Config) *reconcile.Engine {
	return reconcile.New(reconcile.Options{
		OrganizationColumn: cfg.Columns.Organization,
		NameColumn:         cfg.Columns.Name,
		Normalizer:         orgid.NewNormalizer(orgid.Options{CaseInsensitive: cfg.Identifiers.CaseInsensitive}),
		StrictTypes:        cfg.Identifiers.StrictTypes,
		RequireAllPeriods:  cfg.Report.RequireAllPeriods,
	})
}

func reconcileInputs(ctx context.Context, cfg *config.Config, inputs config.Inputs, logger *slog.Logger) (*reconcile.Report, error) {
	masterName := inputs.Master.Label
	if strings.TrimSpace(masterName) == "" {
		masterName = masterLabel
	}
	master, err := load(ctx, logger, masterName, inputs.Master)
	if err != nil {
		return nil, err
	}

	periods := make([]reconcile.Period, 0, len(inputs.Periods))
	for _, in := range inputs.Periods {
		if strings.TrimSpace(in.Path) == "" {
			periods = append(periods, reconcile.Period{Label: in.Label})
			continue
		}
		table, err := load(ctx, logger, in.Label, in)
		if err != nil {
			return nil, err
		}
		periods = append(periods, reconcile.Period{Label: in.Label, Table: table})
	}

	return NewEngine(cfg).Reconcile(master, periods)
}

func load(ctx context.Context, logger *slog.Logger, label string, in config.Input) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := dataset.Load(in.Path, dataset.Options{Name: label, Sheet: in.Sheet})
	if err != nil {
		return nil, &LoadError{Dataset: label, Path: in.Path, Err: err}
	}
	logger.With(logging.String(logging.FieldDataset, label)).Debug("dataset loaded",
		logging.Int("rows", table.Len()),
		logging.Int("columns", len(table.Columns)),
		logging.String("sheet", in.Sheet),
	)
	return table, nil
}

func logDiagnostics(logger *slog.Logger, diags []reconcile.Diagnostic) {
	for _, diag := range diags {
		attrs := []logging.Attr{}
		if diag.Count > 0 {
			attrs = append(attrs, logging.Int(logging.FieldCount, diag.Count))
		}
		if len(diag.Sample) > 0 {
			attrs = append(attrs, logging.Strings(logging.FieldSample, diag.Sample))
		}
		if hint := diagnosticHint(diag.Kind); hint != "" {
			attrs = append(attrs, logging.String(logging.FieldErrorHint, hint))
		}
		logging.WarnWithContext(logger.With(logging.String(logging.FieldDataset, diag.Dataset)),
			diag.Message, string(diag.Kind), attrs...)
	}
}

func diagnosticHint(kind reconcile.DiagnosticKind) string {
	switch kind {
	case reconcile.DiagnosticPeriodMissing:
		return "supply the period file or set report.require_all_periods to fail instead"
	case reconcile.DiagnosticTypeMismatch:
		return "store identifiers the same way in every file, or set identifiers.strict_types"
	case reconcile.DiagnosticUnknownIDs:
		return "add the organizations to the master roster if they should be tracked"
	case reconcile.DiagnosticDuplicateIDs:
		return "remove duplicate rows from the master roster"
	case reconcile.DiagnosticBlankIDs:
		return "fill in the organization column of the master roster"
	default:
		return ""
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, render.ErrReportLocked):
		return "wait for the other run to finish"
	case errors.Is(err, reconcile.ErrPeriodMissing):
		return "supply every period or unset report.require_all_periods"
	}
	switch reconcile.Kind(err) {
	case reconcile.KindSchema:
		return "check [columns] against the dataset headers"
	case reconcile.KindTypeMismatch:
		return "unset identifiers.strict_types or align identifier formats"
	case KindInput:
		return "check the dataset path, format and sheet name"
	case reconcile.KindUsage:
		return "check [master] and [[periods]] or the --master/--period flags"
	default:
		return "check logs for details"
	}
}

// runLogger tees base into a per-run JSON log under log_dir/runs.
func runLogger(cfg *config.Config, base *slog.Logger, runID string) (*slog.Logger, string) {
	if base == nil {
		base = logging.NewNop()
	}
	if strings.TrimSpace(cfg.Paths.LogDir) == "" {
		return base, ""
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	path := filepath.Join(cfg.Paths.LogDir, runLogDir, fmt.Sprintf("ndsreport-%s-%s.log", stamp, runID[:8]))
	fileLogger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		logging.WarnWithContext(base, "run log unavailable; continuing without it", "run_log_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on paths.log_dir"),
			logging.String(logging.FieldImpact, "this run is not recorded in a per-run log file"),
		)
		return base, ""
	}
	return slog.New(logging.TeeHandler(base.Handler(), fileLogger.Handler())), path
}
