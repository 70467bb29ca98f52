// Package reconcile compares a master roster of organizations against the
// submission logs of N reporting periods.
//
// For every master row the Engine counts the periods whose submission set lacks
// the row's identifier (the gap count) and derives three views from that
// vector: the full roster, the organizations absent from every period, and the
// organizations absent from at least one period together with their count.
// Master order is preserved and duplicates are never collapsed.
//
// Identifiers are normalized through orgid before any set is built. Errors are
// all-or-nothing: a missing column, a strict-mode type mismatch or a missing
// period in require-all mode aborts the run without a partial report.
package reconcile
