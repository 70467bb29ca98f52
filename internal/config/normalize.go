package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment fallbacks consulted when the config file leaves a value empty.
const (
	EnvOutputDir = "NDSREPORT_OUTPUT_DIR"
	EnvLogLevel  = "NDSREPORT_LOG_LEVEL"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeReport()
	c.normalizeColumns()
	if err := c.normalizeInputs(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		if value, ok := os.LookupEnv(EnvOutputDir); ok && strings.TrimSpace(value) != "" {
			c.Paths.OutputDir = value
		} else {
			c.Paths.OutputDir = defaultOutputDir
		}
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReport() {
	c.Report.FileName = strings.TrimSpace(c.Report.FileName)
	if c.Report.FileName == "" {
		c.Report.FileName = defaultReportFileName
	}
}

func (c *Config) normalizeColumns() {
	c.Columns.Organization = strings.TrimSpace(c.Columns.Organization)
	if c.Columns.Organization == "" {
		c.Columns.Organization = defaultOrganizationColumn
	}
	c.Columns.Name = strings.TrimSpace(c.Columns.Name)
	if c.Columns.Name == "" {
		c.Columns.Name = defaultNameColumn
	}
}

func (c *Config) normalizeInputs() error {
	var err error
	c.Master.Sheet = strings.TrimSpace(c.Master.Sheet)
	if c.Master.Path, err = expandPath(strings.TrimSpace(c.Master.Path)); err != nil {
		return fmt.Errorf("master.path: %w", err)
	}
	for i := range c.Periods {
		period := &c.Periods[i]
		period.Sheet = strings.TrimSpace(period.Sheet)
		if period.Path, err = expandPath(strings.TrimSpace(period.Path)); err != nil {
			return fmt.Errorf("periods[%d].path: %w", i, err)
		}
		period.Label = strings.TrimSpace(period.Label)
		if period.Label == "" {
			period.Label = DefaultPeriodLabel(i, period.Path)
		}
	}
	return nil
}

// DefaultPeriodLabel derives a label for the period at index from its file
// name, falling back to "Period N".
func DefaultPeriodLabel(index int, path string) string {
	if strings.TrimSpace(path) != "" {
		base := filepath.Base(path)
		if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" && stem != "." {
			return stem
		}
	}
	return "Period " + strconv.Itoa(index+1)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		if value, ok := os.LookupEnv(EnvLogLevel); ok {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
