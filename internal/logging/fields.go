package logging

// Standardized structured logging keys.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldDataset    = "dataset"
	FieldEventType  = "event_type"
	FieldErrorHint  = "error_hint"
	FieldErrorKind  = "error_kind"
	FieldImpact     = "impact"
	FieldAlert      = "alert"
	FieldPeriods    = "periods"
	FieldCount      = "count"
	FieldSample     = "sample"
	FieldOutputPath = "output_path"
)
