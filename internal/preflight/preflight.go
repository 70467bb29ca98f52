package preflight

import (
	"strings"

	"ndsreport/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// RunAll executes every check for cfg and inputs, in display order: master,
// periods, output directory, report lock, log directory.
func RunAll(cfg *config.Config, inputs config.Inputs) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	masterName := "Master dataset"
	masterFile := CheckInputFile(masterName, inputs.Master.Path)
	results = append(results, masterFile)
	if masterFile.Passed {
		results = append(results, CheckColumns(masterName+" columns", inputs.Master, cfg.Columns.Organization, cfg.Columns.Name))
	}

	for _, period := range inputs.Periods {
		name := "Period " + period.Label
		if strings.TrimSpace(period.Path) == "" {
			results = append(results, CheckPeriodSupplied(name, cfg.Report.RequireAllPeriods))
			continue
		}
		file := CheckInputFile(name, period.Path)
		results = append(results, file)
		if file.Passed {
			results = append(results, CheckColumns(name+" columns", period, cfg.Columns.Organization))
		}
	}

	results = append(results, CheckOutputDirectory("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckReportLock("Report lock", cfg.OutputPath()))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckOutputDirectory("Log directory", cfg.Paths.LogDir))
	}

	return results
}
