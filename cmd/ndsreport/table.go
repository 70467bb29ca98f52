package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ndsreport/internal/dataset"
	"ndsreport/internal/reconcile"
)

// renderView renders up to limit rows of v as a rounded table. Numeric
// columns are right aligned. A footer reports rows left out by the limit.
func renderView(v reconcile.View, limit int) string {
	columns := len(v.Columns)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(v.Name)

	header := make(table.Row, columns)
	for i, name := range v.Columns {
		header[i] = name
	}
	tw.AppendHeader(header)

	for _, row := range viewRows(v, limit) {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	shown := len(v.Rows)
	if limit > 0 && limit < shown {
		shown = limit
	}
	footer := make(table.Row, columns)
	footer[0] = fmt.Sprintf("%d of %d rows", shown, len(v.Rows))
	tw.AppendFooter(footer)

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if numericColumn(v, i) {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// numericColumn reports whether every non-empty cell in column col is a
// number.
func numericColumn(v reconcile.View, col int) bool {
	seen := false
	for _, row := range v.Rows {
		if col >= len(row) || row[col].IsEmpty() {
			continue
		}
		if row[col].Kind != dataset.KindNumber {
			return false
		}
		seen = true
	}
	return seen
}
