package testsupport

import (
	"path/filepath"
	"testing"

	"ndsreport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Output and log directories live under the same temp root and are not
// created up front.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.RetentionDays = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// PeriodData describes one period fixture. Nil Records leaves the period
// without a dataset.
type PeriodData struct {
	Label   string
	Records [][]string
}

// WithCSVInputs writes master and period CSV fixtures under the temp root and
// points the config at them.
func WithCSVInputs(master [][]string, periods ...PeriodData) ConfigOption {
	return func(b *configBuilder) {
		inputs := filepath.Join(b.baseDir, "inputs")
		masterPath := filepath.Join(inputs, "master.csv")
		WriteCSV(b.t, masterPath, master)
		b.cfg.Master = config.Input{Label: "master", Path: masterPath}

		b.cfg.Periods = b.cfg.Periods[:0]
		for _, period := range periods {
			in := config.Input{Label: period.Label}
			if period.Records != nil {
				in.Path = filepath.Join(inputs, period.Label+".csv")
				WriteCSV(b.t, in.Path, period.Records)
			}
			b.cfg.Periods = append(b.cfg.Periods, in)
		}
	}
}

// WithThreeMonthScenario configures the reference fixture: organizations 1, 2
// and 3 against March {1}, April {1, 2} and May {1}. Organization 2 misses two
// periods and organization 3 misses all three.
func WithThreeMonthScenario() ConfigOption {
	return WithCSVInputs(ScenarioMaster(), ScenarioPeriods()...)
}

// ScenarioMaster returns the master records of the reference fixture.
func ScenarioMaster() [][]string {
	return [][]string{
		{"Organization", "Name"},
		{"1", "Alpha"},
		{"2", "Beta"},
		{"3", "Gamma"},
	}
}

// ScenarioPeriods returns the period records of the reference fixture.
func ScenarioPeriods() []PeriodData {
	return []PeriodData{
		{Label: "March", Records: [][]string{{"Organization"}, {"1"}}},
		{Label: "April", Records: [][]string{{"Organization"}, {"1"}, {"2"}}},
		{Label: "May", Records: [][]string{{"Organization"}, {"1"}}},
	}
}

// WithRequireAllPeriods sets report.require_all_periods.
func WithRequireAllPeriods() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.RequireAllPeriods = true
	}
}

// WithStrictTypes sets identifiers.strict_types.
func WithStrictTypes() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Identifiers.StrictTypes = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
