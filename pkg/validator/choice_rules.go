package validator

import (
	"fmt"
	"slices"
	"strings"
)

func InListString(field, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedValues, value)
		},
		Error: newError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			"validation.in_list", map[string]any{"values": allowedValues}),
	}
}

func NotInListString(field, value string, forbiddenValues []string) Rule {
	return Rule{
		Check: func() bool {
			return !slices.Contains(forbiddenValues, value)
		},
		Error: newError(field, fmt.Sprintf("must not be one of: %s", strings.Join(forbiddenValues, ", ")),
			"validation.not_in_list", map[string]any{"values": forbiddenValues}),
	}
}
