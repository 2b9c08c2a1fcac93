package importer

import "errors"

var (
	// ErrValidatorNil is returned when a nil validator is provided.
	ErrValidatorNil = errors.New("validator cannot be nil")

	// ErrSourceFailed is returned when the source cannot produce rows.
	ErrSourceFailed = errors.New("failed to read rows from source")

	// ErrSinkFailed is returned when valid rows cannot be stored.
	ErrSinkFailed = errors.New("failed to store rows")

	// ErrRunIDFailed is returned when a run id cannot be generated.
	ErrRunIDFailed = errors.New("failed to generate run id")

	// ErrTooManyFailures is returned when skipped failures exceed the configured limit.
	ErrTooManyFailures = errors.New("too many failures")
)

var (
	// ErrValidation is returned when a chunk could not be validated at all,
	// e.g. because of a rule configuration error.
	ErrValidation = errors.New("failed to validate chunk")
)
