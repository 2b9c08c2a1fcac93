package rowvalidator

// Status is the result kind of one Validate call. The zero value means the batch
// was not validated.
type Status int

const (
	// StatusPassed means no rule was violated.
	StatusPassed Status = iota + 1
	// StatusSkipped means failures were handed to the skip hook and the batch continues.
	StatusSkipped
	// StatusAborted means failures are fatal to the batch.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusSkipped:
		return "skipped"
	case StatusAborted:
		return "aborted"
	}
	return "unknown"
}

// Outcome is the result of one Validate call. Failures is empty when Status is
// StatusPassed.
type Outcome struct {
	Status   Status
	Failures []Failure
}

// Passed reports whether the batch passed validation.
func (o Outcome) Passed() bool {
	return o.Status == StatusPassed
}

// SkippedRows returns the distinct indexes of the failed rows.
func (o Outcome) SkippedRows() []int {
	if o.Status != StatusSkipped {
		return nil
	}
	return rowsOf(o.Failures)
}
