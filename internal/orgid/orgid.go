// Package orgid defines the canonical form organization identifiers take
// before any set membership test.
//
// Spreadsheets hand back the same identifier as 101, 101.0, "101" or " 101 "
// depending on how a file was produced. Normalizer folds all of those into one
// ID so master and period datasets compare equal regardless of storage kind.
package orgid

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"ndsreport/internal/dataset"
)

// ID is a canonical organization identifier. The zero value means blank.
type ID string

// IsZero reports whether the identifier is blank.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// Options controls normalization.
type Options struct {
	// CaseInsensitive folds letter case so "ab-1" and "AB-1" match.
	CaseInsensitive bool
}

// Normalizer converts cells into IDs. It is not safe for concurrent use.
type Normalizer struct {
	fold  bool
	caser cases.Caser
}

// NewNormalizer returns a Normalizer configured by opts.
func NewNormalizer(opts Options) *Normalizer {
	n := &Normalizer{fold: opts.CaseInsensitive}
	if n.fold {
		n.caser = cases.Fold()
	}
	return n
}

// Normalize returns the canonical ID for a cell. Integral numbers render
// without a fractional part; text is NFKC-normalized and trimmed.
func (n *Normalizer) Normalize(cell dataset.Cell) ID {
	if cell.IsEmpty() {
		return ""
	}
	if f, ok := cell.Float(); ok {
		return ID(formatNumber(f))
	}
	return n.NormalizeString(cell.Raw)
}

// NormalizeString canonicalizes a textual identifier.
func (n *Normalizer) NormalizeString(value string) ID {
	text := strings.TrimSpace(norm.NFKC.String(value))
	if text == "" {
		return ""
	}
	if n != nil && n.fold {
		text = n.caser.String(text)
	}
	return ID(text)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
