package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"ndsreport/internal/dataset"
	"ndsreport/internal/reconcile"
)

// HeaderFill is the solid fill colour of header rows.
const HeaderFill = "CCE5FF"

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type styles struct {
	header int
	body   int
}

// WriteWorkbook renders every view of report into an xlsx document on w.
func WriteWorkbook(w io.Writer, report *reconcile.Report) error {
	book, err := Build(report)
	if err != nil {
		return err
	}
	defer book.Close()

	if err := book.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Build assembles the workbook for report without writing it anywhere. The
// caller owns the returned file and must Close it.
func Build(report *reconcile.Report) (*excelize.File, error) {
	if report == nil || len(report.Views) == 0 {
		return nil, fmt.Errorf("render: report has no views")
	}

	book := excelize.NewFile()
	st, err := newStyles(book)
	if err != nil {
		book.Close()
		return nil, err
	}

	defaultSheet := book.GetSheetName(0)
	for i, view := range report.Views {
		if i == 0 {
			if err := book.SetSheetName(defaultSheet, view.Name); err != nil {
				book.Close()
				return nil, fmt.Errorf("name sheet %q: %w", view.Name, err)
			}
		} else if _, err := book.NewSheet(view.Name); err != nil {
			book.Close()
			return nil, fmt.Errorf("create sheet %q: %w", view.Name, err)
		}
		if err := writeView(book, view, st); err != nil {
			book.Close()
			return nil, fmt.Errorf("sheet %q: %w", view.Name, err)
		}
	}
	book.SetActiveSheet(0)
	return book, nil
}

func newStyles(book *excelize.File) (styles, error) {
	header, err := book.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{HeaderFill}, Pattern: 1},
		Border: thinBorder,
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	body, err := book.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return styles{}, fmt.Errorf("body style: %w", err)
	}
	return styles{header: header, body: body}, nil
}

func writeView(book *excelize.File, view reconcile.View, st styles) error {
	cols := len(view.Columns)
	if cols == 0 {
		return nil
	}
	widths := make([]int, cols)

	header := make([]any, cols)
	for c, name := range view.Columns {
		header[c] = name
		widths[c] = max(widths[c], utf8.RuneCountInString(name))
	}
	if err := book.SetSheetRow(view.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range view.Rows {
		values := make([]any, cols)
		for c := 0; c < cols; c++ {
			var cell dataset.Cell
			if c < len(row) {
				cell = row[c]
			}
			values[c] = cellValue(cell)
			if !cell.IsEmpty() {
				widths[c] = max(widths[c], utf8.RuneCountInString(cell.String()))
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(view.Name, axis, &values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if err := book.SetCellStyle(view.Name, "A1", lastCol+"1", st.header); err != nil {
		return err
	}
	if len(view.Rows) > 0 {
		bottom := fmt.Sprintf("%s%d", lastCol, len(view.Rows)+1)
		if err := book.SetCellStyle(view.Name, "A2", bottom, st.body); err != nil {
			return err
		}
	}
	for c, width := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := book.SetColWidth(view.Name, name, name, float64(width+1)); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps a cell to the Go value excelize stores with the matching
// spreadsheet type.
func cellValue(cell dataset.Cell) any {
	switch cell.Kind {
	case dataset.KindNumber:
		if f, ok := cell.Float(); ok {
			return f
		}
		return cell.Raw
	case dataset.KindBool:
		return cell.Raw == "1" || strings.EqualFold(cell.Raw, "true")
	case dataset.KindEmpty:
		return nil
	default:
		return cell.Raw
	}
}
