package reconcile

import (
	"strconv"
	"strings"

	"ndsreport/internal/dataset"
	"ndsreport/internal/orgid"
)

const (
	defaultOrganizationColumn = "Organization"
	defaultNameColumn         = "Name"
	masterLabel               = "master"
)

// Options configures an Engine. Zero values select the Organization and Name
// columns, the default normalizer and lenient type handling.
type Options struct {
	OrganizationColumn string
	NameColumn         string
	Normalizer         *orgid.Normalizer
	// StrictTypes turns identifier kind mismatches into TypeMismatchError.
	StrictTypes bool
	// RequireAllPeriods turns a period without a dataset into ErrPeriodMissing
	// instead of an empty submission set.
	RequireAllPeriods bool
}

// Engine computes gap counts and report views. It holds no per-run state.
type Engine struct {
	orgColumn  string
	nameColumn string
	normalizer *orgid.Normalizer
	strict     bool
	requireAll bool
}

// New constructs an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		orgColumn:  strings.TrimSpace(opts.OrganizationColumn),
		nameColumn: strings.TrimSpace(opts.NameColumn),
		normalizer: opts.Normalizer,
		strict:     opts.StrictTypes,
		requireAll: opts.RequireAllPeriods,
	}
	if e.orgColumn == "" {
		e.orgColumn = defaultOrganizationColumn
	}
	if e.nameColumn == "" {
		e.nameColumn = defaultNameColumn
	}
	if e.normalizer == nil {
		e.normalizer = orgid.NewNormalizer(orgid.Options{})
	}
	return e
}

// Period is one reporting interval. A nil Table means the dataset was not
// supplied.
type Period struct {
	Label string
	Table *dataset.Table
}

// IDSet is the set of canonical identifiers that submitted in one period.
type IDSet map[orgid.ID]struct{}

// Contains reports whether id submitted.
func (s IDSet) Contains(id orgid.ID) bool {
	_, ok := s[id]
	return ok
}

// RosterRow is one master row projected to identifier and name. Organization
// keeps the master cell so numeric identifiers render as numbers.
type RosterRow struct {
	ID           orgid.ID
	Organization dataset.Cell
	Name         string
}

// GapRow is a roster row with the number of periods it is missing from.
type GapRow struct {
	RosterRow
	Months int
}

// ExtractIDs returns the distinct identifiers in table. A nil or empty table
// yields an empty set; blank identifiers are skipped.
func (e *Engine) ExtractIDs(table *dataset.Table) (IDSet, error) {
	return e.extract(labelFor(table, "period"), table)
}

func (e *Engine) extract(label string, table *dataset.Table) (IDSet, error) {
	set := make(IDSet)
	if table == nil {
		return set, nil
	}
	col, ok := table.ColumnIndex(e.orgColumn)
	if !ok {
		if table.Len() == 0 && len(table.Columns) == 0 {
			return set, nil
		}
		return nil, &SchemaError{Dataset: label, Column: e.orgColumn}
	}
	for row := 0; row < table.Len(); row++ {
		id := e.normalizer.Normalize(table.Value(row, col))
		if id.IsZero() {
			continue
		}
		set[id] = struct{}{}
	}
	return set, nil
}

// BuildFullRoster projects every master row to (Organization, Name).
func (e *Engine) BuildFullRoster(master *dataset.Table) ([]RosterRow, error) {
	return e.roster(master)
}

// Gaps returns every master row with its gap count across sets.
func (e *Engine) Gaps(master *dataset.Table, sets []IDSet) ([]GapRow, error) {
	roster, err := e.roster(master)
	if err != nil {
		return nil, err
	}
	return gapVector(roster, sets), nil
}

// BuildNeverSubmitted returns the master rows absent from every set.
func (e *Engine) BuildNeverSubmitted(master *dataset.Table, sets []IDSet) ([]RosterRow, error) {
	gaps, err := e.Gaps(master, sets)
	if err != nil {
		return nil, err
	}
	return neverSubmitted(gaps, len(sets)), nil
}

// BuildGapSummary returns the master rows missing from at least one set.
func (e *Engine) BuildGapSummary(master *dataset.Table, sets []IDSet) ([]GapRow, error) {
	gaps, err := e.Gaps(master, sets)
	if err != nil {
		return nil, err
	}
	return gapSummary(gaps), nil
}

// Reconcile builds the full report for master against periods, in period
// order. The gap vector is computed once and every view is derived from it.
func (e *Engine) Reconcile(master *dataset.Table, periods []Period) (*Report, error) {
	if len(periods) == 0 {
		return nil, usage(ErrNoPeriods, "")
	}
	roster, err := e.roster(master)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	masterKinds := e.identifierKinds(master)
	sets := make([]IDSet, 0, len(periods))
	labels := make([]string, 0, len(periods))
	for i, period := range periods {
		label := strings.TrimSpace(period.Label)
		if label == "" {
			label = labelFor(period.Table, "period "+strconv.Itoa(i+1))
		}
		labels = append(labels, label)

		if period.Table == nil {
			if e.requireAll {
				return nil, usage(ErrPeriodMissing, label)
			}
			diags = append(diags, Diagnostic{
				Kind:    DiagnosticPeriodMissing,
				Dataset: label,
				Message: "period dataset not supplied; every organization counts as missing",
			})
			sets = append(sets, IDSet{})
			continue
		}

		set, err := e.extract(label, period.Table)
		if err != nil {
			return nil, err
		}
		if mismatch := kindMismatch(label, masterKinds, e.identifierKinds(period.Table)); mismatch != nil {
			if e.strict {
				return nil, mismatch
			}
			diags = append(diags, Diagnostic{
				Kind:    DiagnosticTypeMismatch,
				Dataset: label,
				Message: mismatch.Error() + "; identifiers compared in normalized form",
			})
		}
		sets = append(sets, set)
	}

	gaps := gapVector(roster, sets)
	diags = append(diags, rosterDiagnostics(roster, sets, labels)...)
	return newReport(labels, roster, gaps, diags), nil
}

func (e *Engine) roster(master *dataset.Table) ([]RosterRow, error) {
	label := labelFor(master, masterLabel)
	if master == nil {
		return nil, &SchemaError{Dataset: label, Column: e.orgColumn}
	}
	orgCol, ok := master.ColumnIndex(e.orgColumn)
	if !ok {
		return nil, &SchemaError{Dataset: label, Column: e.orgColumn}
	}
	nameCol, ok := master.ColumnIndex(e.nameColumn)
	if !ok {
		return nil, &SchemaError{Dataset: label, Column: e.nameColumn}
	}

	rows := make([]RosterRow, 0, master.Len())
	for row := 0; row < master.Len(); row++ {
		cell := master.Value(row, orgCol)
		rows = append(rows, RosterRow{
			ID:           e.normalizer.Normalize(cell),
			Organization: cell,
			Name:         master.Value(row, nameCol).String(),
		})
	}
	return rows, nil
}

func (e *Engine) identifierKinds(table *dataset.Table) map[dataset.Kind]int {
	kinds := make(map[dataset.Kind]int)
	col, ok := table.ColumnIndex(e.orgColumn)
	if !ok {
		return kinds
	}
	for row := 0; row < table.Len(); row++ {
		cell := table.Value(row, col)
		if cell.IsEmpty() {
			continue
		}
		kinds[cell.Kind]++
	}
	return kinds
}

func gapVector(roster []RosterRow, sets []IDSet) []GapRow {
	gaps := make([]GapRow, len(roster))
	for i, row := range roster {
		missing := 0
		for _, set := range sets {
			if row.ID.IsZero() || !set.Contains(row.ID) {
				missing++
			}
		}
		gaps[i] = GapRow{RosterRow: row, Months: missing}
	}
	return gaps
}

func neverSubmitted(gaps []GapRow, periods int) []RosterRow {
	rows := make([]RosterRow, 0)
	for _, gap := range gaps {
		if gap.Months == periods {
			rows = append(rows, gap.RosterRow)
		}
	}
	return rows
}

func gapSummary(gaps []GapRow) []GapRow {
	rows := make([]GapRow, 0)
	for _, gap := range gaps {
		if gap.Months > 0 {
			rows = append(rows, gap)
		}
	}
	return rows
}

// kindMismatch compares the dominant identifier kind of master and period.
// Columns without any value never mismatch.
func kindMismatch(label string, master, period map[dataset.Kind]int) *TypeMismatchError {
	mk, pk := dominantKind(master), dominantKind(period)
	if mk == dataset.KindEmpty || pk == dataset.KindEmpty || mk == pk {
		return nil
	}
	return &TypeMismatchError{Dataset: label, MasterKind: mk, PeriodKind: pk}
}

func dominantKind(kinds map[dataset.Kind]int) dataset.Kind {
	best, count := dataset.KindEmpty, 0
	for _, kind := range []dataset.Kind{dataset.KindNumber, dataset.KindString, dataset.KindBool} {
		if kinds[kind] > count {
			best, count = kind, kinds[kind]
		}
	}
	return best
}

func labelFor(table *dataset.Table, fallback string) string {
	if table != nil && strings.TrimSpace(table.Name) != "" {
		return table.Name
	}
	return fallback
}
