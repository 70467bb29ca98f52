// Package logging assembles structured slog loggers and formatting helpers used
// across ndsreport.
//
// It owns the console and JSON handlers, routes output to stderr and the
// persistent log file, and exposes context-aware helpers so a report run can
// tag every line with its run ID and the dataset being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
