package reconcile

import (
	"errors"
	"fmt"

	"ndsreport/internal/dataset"
)

var (
	// ErrPeriodMissing reports a period without a dataset while every period
	// is required.
	ErrPeriodMissing = errors.New("period dataset not supplied")
	// ErrNoPeriods reports a reconciliation request without any period.
	ErrNoPeriods = errors.New("no reporting periods configured")
)

// Error kinds returned by Kind.
const (
	KindSchema       = "schema"
	KindTypeMismatch = "type_mismatch"
	KindUsage        = "usage"
	KindInternal     = "internal"
)

// ErrorClassifier allows errors to declare their classification so callers can
// pick an exit hint without string matching.
type ErrorClassifier interface {
	ErrorKind() string
}

// Kind classifies err. Errors that do not implement ErrorClassifier are
// reported as KindInternal.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return KindInternal
}

// SchemaError reports a required column missing from a dataset.
type SchemaError struct {
	Dataset string
	Column  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %q is missing required column %q", e.Dataset, e.Column)
}

func (e *SchemaError) ErrorKind() string { return KindSchema }

// TypeMismatchError reports identifier columns stored as different primitive
// kinds in the master and a period dataset.
type TypeMismatchError struct {
	Dataset    string
	MasterKind dataset.Kind
	PeriodKind dataset.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("dataset %q stores organization identifiers as %s but the master roster uses %s",
		e.Dataset, e.PeriodKind, e.MasterKind)
}

func (e *TypeMismatchError) ErrorKind() string { return KindTypeMismatch }

type usageError struct {
	marker error
	detail string
}

func (e *usageError) Error() string {
	if e.detail == "" {
		return e.marker.Error()
	}
	return fmt.Sprintf("%s: %s", e.marker, e.detail)
}

func (e *usageError) Unwrap() error { return e.marker }

func (e *usageError) ErrorKind() string { return KindUsage }

func usage(marker error, detail string) error {
	return &usageError{marker: marker, detail: detail}
}
