package validator

import "context"

// Checker is a custom rule object. Check calls fail once per violation; the message
// may use the :attribute placeholder. Like other non-implicit rules, checkers are
// skipped for empty values.
type Checker interface {
	Check(ctx context.Context, attribute string, value any, fail func(message string))
}

// CheckFunc adapts a plain function to the Checker interface.
type CheckFunc func(ctx context.Context, attribute string, value any, fail func(message string))

// Check calls f.
func (f CheckFunc) Check(ctx context.Context, attribute string, value any, fail func(message string)) {
	f(ctx, attribute, value, fail)
}
