package validator

import "time"

func DateAfter(field string, value time.Time, after time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(after)
		},
		Error: newError(field, "date must be after "+after.Format(time.DateOnly), "validation.date_after",
			map[string]any{"after": after}),
	}
}

func DateBefore(field string, value time.Time, before time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.Before(before)
		},
		Error: newError(field, "date must be before "+before.Format(time.DateOnly), "validation.date_before",
			map[string]any{"before": before}),
	}
}
