package models

import "fmt"

// ValidationError kinds.
const (
	ValidationMissingField = "missing-required-field"
	ValidationInvalidEnum  = "invalid-enumeration-value"
	ValidationInvalidRange = "invalid-range"
)

// ValidationError reports a malformed filter contract. Always a client
// error, never retried, never reaches the data or classification layers.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("validation failed (%s)", e.Kind)
}

// DataAccessError kinds.
const (
	DataAccessConnection = "connection-failure"
	DataAccessTimeout    = "timeout"
	DataAccessSchema     = "schema-mismatch"
)

// DataAccessError reports a failed read against the interaction source.
// Queries are read-only, so callers may retry idempotently.
type DataAccessError struct {
	Kind string
	Op   string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed (%s) during %s: %v", e.Kind, e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// ClassificationUnavailableError reports that an entire classification
// batch failed. Partial buckets are never returned; the caller should
// degrade rather than chart zero-filled distributions.
type ClassificationUnavailableError struct {
	Taxonomy string
	Err      error
}

func (e *ClassificationUnavailableError) Error() string {
	return fmt.Sprintf("classification unavailable for taxonomy %s: %v", e.Taxonomy, e.Err)
}

func (e *ClassificationUnavailableError) Unwrap() error { return e.Err }
