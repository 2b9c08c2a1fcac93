package validator

import "fmt"

// MinNum validates that a numeric value is greater than or equal to the minimum.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: newError(field, fmt.Sprintf("must be at least %v", min), "validation.min", map[string]any{"min": min}),
	}
}

// MaxNum validates that a numeric value is less than or equal to the maximum.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: newError(field, fmt.Sprintf("must be at most %v", max), "validation.max", map[string]any{"max": max}),
	}
}
