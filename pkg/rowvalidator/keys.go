package rowvalidator

import (
	"strings"

	"github.com/dmitrymomot/importkit/pkg/validator"
)

const wildcard = "*."

// FormatKey qualifies a column key with the row wildcard: "email" becomes
// "*.email". Qualified keys are returned unchanged.
func FormatKey(key string) string {
	if strings.HasPrefix(key, wildcard) {
		return key
	}
	return wildcard + key
}

// FormatKeys returns a copy of m with every key passed through FormatKey.
func FormatKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[FormatKey(k)] = v
	}
	return out
}

// FormatRules qualifies the keys of a rule set and rewrites field references
// inside its rules with FormatRule.
func FormatRules(rules map[string]any) map[string]any {
	out := make(map[string]any, len(rules))
	for k, rule := range rules {
		out[FormatKey(k)] = FormatRule(rule)
	}
	return out
}

// fieldRefs tells which parameters of a cross-field rule name another column:
// the first one, or all of them.
var fieldRefs = map[string]bool{
	"required_if":      false,
	"required_unless":  false,
	"same":             false,
	"different":        false,
	"required_with":    true,
	"required_without": true,
}

// FormatRule qualifies the column references of cross-field rules so they
// address a sibling column of the same row: "required_if:other,yes" becomes
// "required_if:*.other,yes". Textual rules are rewritten per "|" segment,
// lists element by element. Checkers and other values pass through.
func FormatRule(rule any) any {
	switch r := rule.(type) {
	case string:
		return formatText(r)
	case validator.Spec:
		return formatSpec(r)
	case []string:
		out := make([]string, len(r))
		for i, s := range r {
			out[i] = formatText(s)
		}
		return out
	case []validator.Spec:
		out := make([]validator.Spec, len(r))
		for i, s := range r {
			out[i] = formatSpec(s)
		}
		return out
	case []any:
		out := make([]any, len(r))
		for i, item := range r {
			out[i] = FormatRule(item)
		}
		return out
	}
	return rule
}

func formatText(rules string) string {
	segments := validator.SplitRules(rules)
	changed := false
	for i, segment := range segments {
		s := validator.ParseSpec(segment)
		if _, ok := fieldRefs[s.Name]; !ok {
			continue
		}
		segments[i] = formatSpec(s).String()
		changed = true
	}
	if !changed {
		return rules
	}
	return strings.Join(segments, "|")
}

func formatSpec(s validator.Spec) validator.Spec {
	all, ok := fieldRefs[s.Name]
	if !ok || len(s.Params) == 0 {
		return s
	}
	params := make([]string, len(s.Params))
	copy(params, s.Params)
	for i := range params {
		if i > 0 && !all {
			break
		}
		params[i] = FormatKey(params[i])
	}
	return validator.Spec{Name: s.Name, Params: params}
}
