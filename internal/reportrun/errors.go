package reportrun

import (
	"fmt"

	"ndsreport/internal/reconcile"
)

// KindInput classifies datasets that could not be opened or parsed.
const KindInput = "input"

// LoadError reports a dataset that could not be read.
type LoadError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Dataset, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) ErrorKind() string { return KindInput }

// InputsError reports an unusable set of inputs, such as no master dataset.
type InputsError struct {
	Err error
}

func (e *InputsError) Error() string { return "inputs: " + e.Err.Error() }

func (e *InputsError) Unwrap() error { return e.Err }

func (e *InputsError) ErrorKind() string { return reconcile.KindUsage }
