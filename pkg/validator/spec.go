package validator

import "strings"

// Spec is the structured form of a textual rule: a rule name plus its parameters.
// "required_if:status,active" is Spec{Name: "required_if", Params: []string{"status", "active"}}.
type Spec struct {
	Name   string
	Params []string
}

// String serializes the spec back into the textual rule grammar.
func (s Spec) String() string {
	if len(s.Params) == 0 {
		return s.Name
	}
	return s.Name + ":" + strings.Join(s.Params, ",")
}

// wholeParam lists rules whose parameter is never split on commas.
var wholeParam = map[string]bool{
	"regex":       true,
	"not_regex":   true,
	"date_format": true,
}

// ParseSpec parses a single textual rule such as "min:0" or "required_if:status,active".
func ParseSpec(rule string) Spec {
	name, params, found := strings.Cut(strings.TrimSpace(rule), ":")
	s := Spec{Name: strings.TrimSpace(name)}
	if !found {
		return s
	}
	if wholeParam[s.Name] {
		s.Params = []string{params}
		return s
	}
	for p := range strings.SplitSeq(params, ",") {
		s.Params = append(s.Params, strings.TrimSpace(p))
	}
	return s
}

// SplitRules splits a pipe-separated rule string into single rules.
// A regex or not_regex rule consumes the rest of the string, so patterns containing
// a pipe must come last or be declared in a list.
func SplitRules(rules string) []string {
	parts := strings.Split(rules, "|")
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		name, _, _ := strings.Cut(strings.TrimSpace(part), ":")
		if name == "regex" || name == "not_regex" {
			out = append(out, strings.TrimSpace(strings.Join(parts[i:], "|")))
			break
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
