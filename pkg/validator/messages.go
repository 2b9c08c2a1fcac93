package validator

import (
	"cmp"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultMessages is the message catalog keyed by ValidationError.TranslationKey.
// Placeholders are written as :name and filled from TranslationValues; :attribute is
// the display name of the failing attribute.
var DefaultMessages = map[string]string{
	"validation.required":          "The :attribute field is required.",
	"validation.required_if":       "The :attribute field is required when :other is :value.",
	"validation.required_unless":   "The :attribute field is required unless :other is in :values.",
	"validation.required_with":     "The :attribute field is required when :others is present.",
	"validation.required_without":  "The :attribute field is required when :others is not present.",
	"validation.present":           "The :attribute field must be present.",
	"validation.string":            "The :attribute field must be a string.",
	"validation.numeric":           "The :attribute field must be a number.",
	"validation.integer":           "The :attribute field must be an integer.",
	"validation.boolean":           "The :attribute field must be true or false.",
	"validation.array":             "The :attribute field must be a list.",
	"validation.email":             "The :attribute field must be a valid email address.",
	"validation.url":               "The :attribute field must be a valid URL.",
	"validation.uuid":              "The :attribute field must be a valid UUID.",
	"validation.uuid_version":      "The :attribute field must be a valid UUID version :version.",
	"validation.ip":                "The :attribute field must be a valid IP address.",
	"validation.ipv4":              "The :attribute field must be a valid IPv4 address.",
	"validation.ipv6":              "The :attribute field must be a valid IPv6 address.",
	"validation.mac":               "The :attribute field must be a valid MAC address.",
	"validation.ascii":             "The :attribute field must only contain ASCII characters.",
	"validation.alpha":             "The :attribute field must only contain letters.",
	"validation.alphanumeric":      "The :attribute field must only contain letters and numbers.",
	"validation.digits":            "The :attribute field must be :digits digits.",
	"validation.regex_pattern":     "The :attribute field format is invalid.",
	"validation.regex_not_pattern": "The :attribute field format is invalid.",
	"validation.starts_with":       "The :attribute field must start with one of the following: :values.",
	"validation.ends_with":         "The :attribute field must end with one of the following: :values.",
	"validation.in_list":           "The selected :attribute is invalid.",
	"validation.not_in_list":       "The selected :attribute is invalid.",
	"validation.min":               "The :attribute field must be at least :min.",
	"validation.min_length":        "The :attribute field must be at least :min characters.",
	"validation.min_items":         "The :attribute field must have at least :min items.",
	"validation.max":               "The :attribute field must not be greater than :max.",
	"validation.max_length":        "The :attribute field must not be greater than :max characters.",
	"validation.max_items":         "The :attribute field must not have more than :max items.",
	"validation.between":           "The :attribute field must be between :min and :max.",
	"validation.between_length":    "The :attribute field must be between :min and :max characters.",
	"validation.between_items":     "The :attribute field must have between :min and :max items.",
	"validation.size":              "The :attribute field must be :size.",
	"validation.exact_length":      "The :attribute field must be :length characters.",
	"validation.size_items":        "The :attribute field must contain :size items.",
	"validation.gt":                "The :attribute field must be greater than :value.",
	"validation.gte":               "The :attribute field must be greater than or equal to :value.",
	"validation.lt":                "The :attribute field must be less than :value.",
	"validation.lte":               "The :attribute field must be less than or equal to :value.",
	"validation.date":              "The :attribute field must be a valid date.",
	"validation.date_format":       "The :attribute field must match the format :format.",
	"validation.date_after":        "The :attribute field must be a date after :after.",
	"validation.date_before":       "The :attribute field must be a date before :before.",
	"validation.same":              "The :attribute field must match :other.",
	"validation.different":         "The :attribute field and :other must be different.",
	"validation.distinct":          "The :attribute field has a duplicate value.",
}

// refValues are TranslationValues that hold attribute references and are rendered
// through the display names.
var refValues = map[string]bool{
	"other":  true,
	"others": true,
}

// formatter resolves custom messages and attribute names for one Check call.
type formatter struct {
	catalog    map[string]string
	messages   map[string]string
	attributes map[string]string
	patterns   map[string]*regexp.Regexp
}

func newFormatter(catalog, messages, attributes map[string]string) *formatter {
	return &formatter{
		catalog:    catalog,
		messages:   messages,
		attributes: attributes,
		patterns:   make(map[string]*regexp.Regexp),
	}
}

// MatchPattern reports whether a concrete attribute path matches a rule key such
// as "*.email", where "*" stands for exactly one path segment.
func MatchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	return compilePattern(pattern).MatchString(path)
}

func compilePattern(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(pattern)
	return regexp.MustCompile("^" + strings.ReplaceAll(quoted, `\*`, `[^.]+`) + "$")
}

func (f *formatter) match(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	re, ok := f.patterns[pattern]
	if !ok {
		re = compilePattern(pattern)
		f.patterns[pattern] = re
	}
	return re.MatchString(path)
}

// lookup finds the value whose key addresses path: an exact key first, then wildcard
// keys in sorted order so the result does not depend on map iteration.
func (f *formatter) lookup(m map[string]string, path string) (string, bool) {
	if v, ok := m[path]; ok {
		return v, true
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if f.match(key, path) {
			return m[key], true
		}
	}
	return "", false
}

// custom returns the caller supplied message for a failed rule: "<attribute>.<rule>"
// first, then "<attribute>", then the bare rule name.
func (f *formatter) custom(path, rule string) (string, bool) {
	if len(f.messages) == 0 {
		return "", false
	}
	if m, ok := f.lookup(f.messages, path+"."+rule); ok {
		return m, true
	}
	if m, ok := f.lookup(f.messages, path); ok {
		return m, true
	}
	m, ok := f.messages[rule]
	return m, ok
}

// attribute returns the display name for a concrete path.
func (f *formatter) attribute(path string) string {
	if name, ok := f.lookup(f.attributes, path); ok {
		return name
	}
	return path
}

// ref returns the display name for a rule parameter that references an attribute.
func (f *formatter) ref(ref string) string {
	if name, ok := f.attributes[ref]; ok {
		return name
	}
	return strings.TrimPrefix(ref, "*.")
}

func (f *formatter) message(path, rule string, verr ValidationError) string {
	tmpl, ok := f.custom(path, rule)
	if !ok {
		tmpl, ok = f.catalog[verr.TranslationKey]
	}
	if !ok {
		tmpl = "The :attribute field " + verr.Message + "."
	}
	return f.replace(tmpl, path, verr.TranslationValues)
}

func (f *formatter) replace(tmpl, path string, values map[string]any) string {
	out := strings.ReplaceAll(tmpl, ":attribute", f.attribute(path))

	// Longer names first so :min never eats the prefix of a :minimum placeholder.
	keys := slices.SortedFunc(maps.Keys(values), func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	for _, key := range keys {
		if key == "field" {
			continue
		}
		out = strings.ReplaceAll(out, ":"+key, f.render(key, values[key]))
	}
	return out
}

func (f *formatter) render(key string, v any) string {
	switch x := v.(type) {
	case string:
		if refValues[key] {
			return f.ref(x)
		}
		return x
	case []string:
		parts := x
		if refValues[key] {
			parts = make([]string, len(x))
			for i, ref := range x {
				parts[i] = f.ref(ref)
			}
			return strings.Join(parts, " / ")
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return x.Format("2006-01-02")
	}
	return fmt.Sprint(v)
}
