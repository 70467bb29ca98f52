// Package render writes reconciliation reports as styled xlsx workbooks.
//
// Each report view becomes one worksheet in report order. Header rows are
// bold on a light blue fill, every used cell gets a thin border, and column
// widths follow the longest rendered value. SaveWorkbook guards the target
// with an advisory lock and replaces it atomically.
package render
