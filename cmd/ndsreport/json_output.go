package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"ndsreport/internal/reconcile"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type viewJSON struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns,omitempty"`
	Total   int        `json:"total"`
	Rows    [][]string `json:"rows,omitempty"`
}

type diagnosticJSON struct {
	Kind    string   `json:"kind"`
	Dataset string   `json:"dataset"`
	Message string   `json:"message"`
	Count   int      `json:"count,omitempty"`
	Sample  []string `json:"sample,omitempty"`
}

func diagnosticsJSON(diags []reconcile.Diagnostic) []diagnosticJSON {
	out := make([]diagnosticJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagnosticJSON{
			Kind:    string(d.Kind),
			Dataset: d.Dataset,
			Message: d.Message,
			Count:   d.Count,
			Sample:  d.Sample,
		})
	}
	return out
}

// viewRows renders up to limit rows of v as strings; limit <= 0 means all.
func viewRows(v reconcile.View, limit int) [][]string {
	n := len(v.Rows)
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]string, 0, n)
	for _, row := range v.Rows[:n] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows
}
