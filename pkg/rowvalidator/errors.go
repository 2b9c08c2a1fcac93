package rowvalidator

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/importkit/pkg/validator"
)

var (
	// ErrNoRules is returned when the import spec provides neither fixed nor batch rules.
	ErrNoRules = errors.New("import spec provides no rules")

	// ErrValidationFailed is matched by *ValidationError.
	ErrValidationFailed = errors.New("row validation failed")

	// ErrRowSkipped is matched by *RowSkippedError.
	ErrRowSkipped = errors.New("rows skipped")

	// ErrInconsistentReport is returned when the engine reports an attribute path
	// that does not address a row of the batch.
	ErrInconsistentReport = errors.New("validation report does not match the batch")
)

// RowSkippedError signals that the failures were handed to the import spec's
// OnFailure hook and the failed rows should be skipped.
type RowSkippedError struct {
	Failures []Failure
}

func (e *RowSkippedError) Error() string {
	return fmt.Sprintf("%d row(s) skipped with %d failure(s)", len(rowsOf(e.Failures)), len(e.Failures))
}

func (e *RowSkippedError) Is(target error) bool {
	return target == ErrRowSkipped
}

// SkippedRows returns the distinct indexes of the failed rows.
func (e *RowSkippedError) SkippedRows() []int {
	return rowsOf(e.Failures)
}

// ValidationError aborts the batch. It carries the engine report and the
// failures decomposed from it.
type ValidationError struct {
	Report   *validator.Report
	Failures []Failure
}

func (e *ValidationError) Error() string {
	if len(e.Failures) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Failures[0].Error()) + more(len(e.Failures)-1)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) Unwrap() error {
	if e.Report == nil {
		return nil
	}
	return e.Report
}

// Rows returns the distinct indexes of the failed rows.
func (e *ValidationError) Rows() []int {
	return rowsOf(e.Failures)
}

func more(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(" (and %d more)", n)
}

// IsSkipped reports whether err signals skipped rows.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrRowSkipped)
}

// AsValidationError extracts a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
