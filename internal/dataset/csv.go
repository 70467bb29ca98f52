package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// readCSV treats the first record as the header. A column is numeric only when
// every non-blank value in it parses as a number; otherwise all of its values
// stay text, so "7" next to "A7" remains a string.
func readCSV(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", opts.Name, err)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return NewTable(opts.Name, nil, nil), nil
	}

	columns := records[0]
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], utf8BOM)
	}

	numeric := make([]bool, len(columns))
	for c := range columns {
		numeric[c] = numericColumn(records[1:], c)
	}

	data := make([][]Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		cells := make([]Cell, len(columns))
		for c := range columns {
			if c >= len(record) || strings.TrimSpace(record[c]) == "" {
				continue
			}
			if numeric[c] {
				cells[c] = Cell{Raw: strings.TrimSpace(record[c]), Kind: KindNumber}
				continue
			}
			cells[c] = Text(record[c])
		}
		if blankRow(cells) {
			continue
		}
		data = append(data, cells)
	}
	return NewTable(opts.Name, columns, data), nil
}

func numericColumn(records [][]string, col int) bool {
	seen := false
	for _, record := range records {
		if col >= len(record) || strings.TrimSpace(record[col]) == "" {
			continue
		}
		if _, ok := parseNumber(record[col]); !ok {
			return false
		}
		seen = true
	}
	return seen
}
