package validator

import (
	"regexp"
	"strings"
)

// MatchesRegex validates value against pattern. An invalid pattern never matches;
// textual rules reject it before evaluation.
func MatchesRegex(field, value string, pattern string) Rule {
	re, err := regexp.Compile(pattern)
	return Rule{
		Check: func() bool {
			return err == nil && strings.TrimSpace(value) != "" && re.MatchString(value)
		},
		Error: newError(field, "format is invalid", "validation.regex_pattern", map[string]any{"pattern": pattern}),
	}
}

func DoesNotMatchRegex(field, value string, pattern string) Rule {
	re, err := regexp.Compile(pattern)
	return Rule{
		Check: func() bool {
			return err == nil && !re.MatchString(value)
		},
		Error: newError(field, "format is invalid", "validation.regex_not_pattern", map[string]any{"pattern": pattern}),
	}
}
