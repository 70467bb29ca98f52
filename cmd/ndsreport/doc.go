// Package main hosts the ndsreport CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once per invocation, resolves
// the master and period datasets from the config file or from flags, and
// hands them to internal/reportrun. generate writes the workbook, preview
// prints the views as tables, and check runs the preflight checks.
//
// Keep this package thin. Behaviour belongs in the internal packages; commands
// only parse flags and format output.
package main
