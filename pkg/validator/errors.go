package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFieldRequired is returned when a required field is empty.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidLength is returned when a field has an invalid length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidValue is returned when a field has an invalid value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrOutOfRange is returned when a numeric value is out of the allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidFormat is returned when a field has an invalid format.
	ErrInvalidFormat = errors.New("invalid format")
)

// Engine configuration errors. They describe a broken rule set rather than invalid data
// and are returned by Engine.Check instead of a Report.
var (
	// ErrUnknownRule is returned when a rule name is not registered on the engine.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRule is returned when a rule expression cannot be compiled.
	ErrInvalidRule = errors.New("invalid validation rule")

	// ErrDuplicateEntry is returned when two entries share the same key.
	ErrDuplicateEntry = errors.New("duplicate entry key")
)
