package reconcile

import (
	"fmt"
	"sort"

	"ndsreport/internal/dataset"
	"ndsreport/internal/orgid"
)

// View names and column headers of the rendered report.
const (
	RosterViewName  = "Entity_SelfList"
	SummaryViewName = "Summary"

	ColumnOrganization = "Organization"
	ColumnName         = "Name"
	ColumnMonths       = "Months"
)

// NeverSubmittedViewName names the view of organizations absent from all n
// periods.
func NeverSubmittedViewName(n int) string {
	return fmt.Sprintf("Last %d Months Not Submitted", n)
}

// View is one named, schema-fixed table of the report.
type View struct {
	Name    string
	Columns []string
	Rows    [][]dataset.Cell
}

// Report is the outcome of one reconciliation. Views are in render order;
// the typed slices back them for callers that need more than cells.
type Report struct {
	Periods        []string
	Views          []View
	Roster         []RosterRow
	NeverSubmitted []RosterRow
	Summary        []GapRow
	Diagnostics    []Diagnostic
}

// View looks up a view by name.
func (r *Report) View(name string) (View, bool) {
	if r == nil {
		return View{}, false
	}
	for _, v := range r.Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// DiagnosticKind classifies a non-fatal finding.
type DiagnosticKind string

const (
	DiagnosticPeriodMissing DiagnosticKind = "period_missing"
	DiagnosticTypeMismatch  DiagnosticKind = "type_mismatch"
	DiagnosticUnknownIDs    DiagnosticKind = "unknown_ids"
	DiagnosticDuplicateIDs  DiagnosticKind = "duplicate_ids"
	DiagnosticBlankIDs      DiagnosticKind = "blank_ids"
)

// Diagnostic is a non-fatal observation about the inputs. Sample carries up to
// sampleSize offending identifiers in sorted order.
type Diagnostic struct {
	Kind    DiagnosticKind
	Dataset string
	Message string
	Count   int
	Sample  []string
}

const sampleSize = 5

func newReport(labels []string, roster []RosterRow, gaps []GapRow, diags []Diagnostic) *Report {
	never := neverSubmitted(gaps, len(labels))
	summary := gapSummary(gaps)

	report := &Report{
		Periods:        append([]string(nil), labels...),
		Roster:         roster,
		NeverSubmitted: never,
		Summary:        summary,
		Diagnostics:    diags,
	}
	report.Views = []View{
		{
			Name:    RosterViewName,
			Columns: []string{ColumnOrganization, ColumnName},
			Rows:    rosterCells(roster),
		},
		{
			Name:    NeverSubmittedViewName(len(labels)),
			Columns: []string{ColumnOrganization, ColumnName},
			Rows:    rosterCells(never),
		},
		{
			Name:    SummaryViewName,
			Columns: []string{ColumnOrganization, ColumnName, ColumnMonths},
			Rows:    gapCells(summary),
		},
	}
	return report
}

func rosterCells(rows []RosterRow) [][]dataset.Cell {
	cells := make([][]dataset.Cell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []dataset.Cell{row.Organization, dataset.Text(row.Name)})
	}
	return cells
}

func gapCells(rows []GapRow) [][]dataset.Cell {
	cells := make([][]dataset.Cell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []dataset.Cell{row.Organization, dataset.Text(row.Name), dataset.Int(row.Months)})
	}
	return cells
}

func rosterDiagnostics(roster []RosterRow, sets []IDSet, labels []string) []Diagnostic {
	var diags []Diagnostic

	known := make(map[orgid.ID]int, len(roster))
	blank := 0
	for _, row := range roster {
		if row.ID.IsZero() {
			blank++
			continue
		}
		known[row.ID]++
	}
	if blank > 0 {
		diags = append(diags, Diagnostic{
			Kind:    DiagnosticBlankIDs,
			Dataset: masterLabel,
			Message: "master rows without an organization identifier count as missing from every period",
			Count:   blank,
		})
	}

	var dupes []string
	for id, count := range known {
		if count > 1 {
			dupes = append(dupes, id.String())
		}
	}
	if len(dupes) > 0 {
		diags = append(diags, Diagnostic{
			Kind:    DiagnosticDuplicateIDs,
			Dataset: masterLabel,
			Message: "duplicate organization identifiers are kept as separate rows",
			Count:   len(dupes),
			Sample:  sample(dupes),
		})
	}

	for i, set := range sets {
		var unknown []string
		for id := range set {
			if _, ok := known[id]; !ok {
				unknown = append(unknown, id.String())
			}
		}
		if len(unknown) == 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			Kind:    DiagnosticUnknownIDs,
			Dataset: labels[i],
			Message: "identifiers absent from the master roster are ignored",
			Count:   len(unknown),
			Sample:  sample(unknown),
		})
	}
	return diags
}

func sample(values []string) []string {
	sort.Strings(values)
	if len(values) > sampleSize {
		values = values[:sampleSize]
	}
	return values
}
