// Package preflight provides readiness checks for the files and directories
// a report run depends on.
//
// The CLI "check" command prints every Result; "generate" runs the same
// checks implicitly through dataset loading and the report lock, so a clean
// preflight means a run can start. Checks never modify inputs or reports.
package preflight
