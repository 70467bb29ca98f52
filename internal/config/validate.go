package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if err := c.validatePeriods(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateReport() error {
	name := strings.TrimSpace(c.Report.FileName)
	if name == "" {
		return errors.New("report.file_name must be set")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("report.file_name %q must be a file name without directories", name)
	}
	if !strings.EqualFold(filepath.Ext(name), reportExtension) {
		return fmt.Errorf("report.file_name %q must end in %s", name, reportExtension)
	}
	return nil
}

func (c *Config) validateColumns() error {
	org := strings.TrimSpace(c.Columns.Organization)
	name := strings.TrimSpace(c.Columns.Name)
	if org == "" {
		return errors.New("columns.organization must be set")
	}
	if name == "" {
		return errors.New("columns.name must be set")
	}
	if org == name {
		return fmt.Errorf("columns.organization and columns.name must differ (both %q)", org)
	}
	return nil
}

func (c *Config) validatePeriods() error {
	seen := make(map[string]int, len(c.Periods))
	for i, period := range c.Periods {
		label := strings.TrimSpace(period.Label)
		if label == "" {
			continue
		}
		if prev, ok := seen[label]; ok {
			return fmt.Errorf("periods[%d].label %q duplicates periods[%d]", i, label, prev)
		}
		seen[label] = i
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}
