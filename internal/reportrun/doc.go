// Package reportrun executes one report invocation end to end.
//
// Run resolves the master and period datasets, loads them, reconciles them
// into the three report views, logs diagnostics, and writes the styled
// workbook. Every run gets a UUID that tags its log lines and names its
// per-run log file.
package reportrun
