// Package rowvalidator validates batches of tabular rows and reports violations
// per row.
//
// A RowValidator submits the whole batch to a validator Engine in one call, so
// rules that look across rows (distinct, batch-computed "in" lists) see every
// row. Rule, message and attribute keys are written per column; the validator
// qualifies them with the row wildcard ("email" becomes "*.email") and rewrites
// column references of cross-field rules ("required_if:type,business" becomes
// "required_if:*.type,business") so they address the same row.
//
// The engine reports violations by attribute path, "<row>.<column>". Each path
// becomes one Failure carrying the row index, the column's display name, the
// messages and the raw row.
//
// # Import specs
//
// The rules come from an ImportSpec, detected by the interfaces it implements:
//
//   - FixedRuleProvider or BatchRuleProvider (one is required)
//   - MessageProvider and AttributeProvider (optional overrides)
//   - SkipsOnFailure (optional skip policy; FailureCollector implements it)
//
// # Usage
//
//	rv := rowvalidator.New(validator.New(), rowvalidator.WithLogger(log))
//
//	outcome, err := rv.Validate(ctx, rowvalidator.Rows(records...), spec)
//	switch outcome.Status {
//	case rowvalidator.StatusPassed:
//	    // store rows
//	case rowvalidator.StatusSkipped:
//	    // failures already went to spec.OnFailure; drop outcome.SkippedRows()
//	case rowvalidator.StatusAborted:
//	    return err // *rowvalidator.ValidationError
//	default:
//	    return err // broken rule set or canceled context
//	}
//
// # Error Handling
//
// The error return mirrors the outcome for callers that only propagate errors:
// *RowSkippedError matches ErrRowSkipped, *ValidationError matches
// ErrValidationFailed and unwraps to the engine's *validator.Report. ErrNoRules,
// ErrInconsistentReport and engine configuration errors come with a zero Outcome.
package rowvalidator
