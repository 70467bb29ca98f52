package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, opts Options) (*Table, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", opts.Name, err)
	}
	defer book.Close()

	sheet, err := resolveSheet(book, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", opts.Name, err)
	}

	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, opts.Name, err)
	}
	if len(rows) == 0 {
		return NewTable(opts.Name, nil, nil), nil
	}

	columns := rows[0]
	data := make([][]Cell, 0, len(rows)-1)
	for r := 1; r < len(rows); r++ {
		cells := make([]Cell, len(columns))
		for c := range columns {
			if c >= len(rows[r]) {
				break
			}
			raw := rows[r][c]
			if strings.TrimSpace(raw) == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, opts.Name, err)
			}
			cellType, err := book.GetCellType(sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("read cell %s of %s: %w", axis, opts.Name, err)
			}
			cells[c] = cellFromXLSX(raw, cellType)
		}
		if blankRow(cells) {
			continue
		}
		data = append(data, cells)
	}
	return NewTable(opts.Name, columns, data), nil
}

func resolveSheet(book *excelize.File, sheet string) (string, error) {
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		list := book.GetSheetList()
		if len(list) == 0 {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return list[0], nil
	}
	idx, err := book.GetSheetIndex(sheet)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found", sheet)
	}
	return sheet, nil
}

// Numbers are stored without a type attribute, which excelize reports as unset.
func cellFromXLSX(raw string, cellType excelize.CellType) Cell {
	switch cellType {
	case excelize.CellTypeBool:
		return Cell{Raw: raw, Kind: KindBool}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if _, ok := parseNumber(raw); ok {
			return Cell{Raw: strings.TrimSpace(raw), Kind: KindNumber}
		}
		return Text(raw)
	default:
		return Text(raw)
	}
}
