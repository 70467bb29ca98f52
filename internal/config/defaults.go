package config

const (
	defaultConfigPath         = "~/.config/ndsreport/config.toml"
	projectConfigName         = "ndsreport.toml"
	defaultOutputDir          = "."
	defaultLogDir             = "~/.local/share/ndsreport/logs"
	defaultReportFileName     = "NDS_Final_Formatted_Report.xlsx"
	defaultOrganizationColumn = "Organization"
	defaultNameColumn         = "Name"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 30
	logFileName               = "ndsreport.log"
	reportExtension           = ".xlsx"
)

// Default returns a Config populated with repository defaults. OutputDir and
// the log level are left empty so normalization can consult
// NDSREPORT_OUTPUT_DIR and NDSREPORT_LOG_LEVEL first.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Report: Report{
			FileName: defaultReportFileName,
		},
		Columns: Columns{
			Organization: defaultOrganizationColumn,
			Name:         defaultNameColumn,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
