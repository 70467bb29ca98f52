// Package dataset models the tabular inputs ndsreport reconciles.
//
// A Table is a header row plus data rows of typed cells. The cell kind records
// what the source format said a value was (text, number, boolean) so callers
// can detect identifier columns that were stored differently across files.
// Load reads xlsx workbooks through excelize and csv files through
// encoding/csv, inferring numeric columns the same way a spreadsheet import
// would. Nothing in this package knows about organizations or periods.
package dataset
