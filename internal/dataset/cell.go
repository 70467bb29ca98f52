package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies the primitive type a source stored for a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is a single value with its source kind. Raw holds the value as text;
// for numbers it is a strconv-parseable representation.
type Cell struct {
	Raw  string
	Kind Kind
}

// Text returns a string cell, or an empty cell when value is blank.
func Text(value string) Cell {
	if strings.TrimSpace(value) == "" {
		return Cell{}
	}
	return Cell{Raw: value, Kind: KindString}
}

// Number returns a numeric cell.
func Number(value float64) Cell {
	return Cell{Raw: strconv.FormatFloat(value, 'f', -1, 64), Kind: KindNumber}
}

// Int returns a numeric cell holding an integer.
func Int(value int) Cell {
	return Cell{Raw: strconv.Itoa(value), Kind: KindNumber}
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || strings.TrimSpace(c.Raw) == ""
}

// Float parses numeric cells. Non-numeric cells report false.
func (c Cell) Float() (float64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders the cell for display. Integral numbers drop their fractional
// part so spreadsheet floats such as 101.0 print as 101.
func (c Cell) String() string {
	if f, ok := c.Float(); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return c.Raw
}

func parseNumber(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
