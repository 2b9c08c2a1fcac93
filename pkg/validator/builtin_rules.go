package validator

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// builtinRules is the textual rule set every Engine starts with.
var builtinRules = map[string]Definition{
	// presence
	"required":         {Func: requiredRule, Implicit: true},
	"required_if":      {Func: requiredIfRule, Implicit: true, MinParams: 2},
	"required_unless":  {Func: requiredUnlessRule, Implicit: true, MinParams: 2},
	"required_with":    {Func: requiredWithRule, Implicit: true, MinParams: 1},
	"required_without": {Func: requiredWithoutRule, Implicit: true, MinParams: 1},
	"present":          {Func: presentRule, Implicit: true},

	// types
	"string":  {Func: stringRule},
	"numeric": {Func: numericRule},
	"integer": {Func: integerRule},
	"boolean": {Func: booleanRule},
	"array":   {Func: arrayRule},

	// formats
	"email":     {Func: func(f Field) Rule { return ValidEmail(f.Path, stringify(f.Value)) }},
	"url":       {Func: func(f Field) Rule { return ValidURL(f.Path, stringify(f.Value)) }},
	"uuid":      {Func: uuidRule, NumericParams: true},
	"alpha":     {Func: func(f Field) Rule { return ValidAlpha(f.Path, stringify(f.Value)) }},
	"alpha_num": {Func: func(f Field) Rule { return ValidAlphanumeric(f.Path, stringify(f.Value)) }},
	"digits":    {Func: digitsRule, MinParams: 1, NumericParams: true},
	"regex": {Func: func(f Field) Rule {
		return MatchesRegex(f.Path, stringify(f.Value), f.Params[0])
	}, MinParams: 1},
	"not_regex": {Func: func(f Field) Rule {
		return DoesNotMatchRegex(f.Path, stringify(f.Value), f.Params[0])
	}, MinParams: 1},
	"ip":          {Func: func(f Field) Rule { return ValidIP(f.Path, stringify(f.Value)) }},
	"ipv4":        {Func: func(f Field) Rule { return ValidIPv4(f.Path, stringify(f.Value)) }},
	"ipv6":        {Func: func(f Field) Rule { return ValidIPv6(f.Path, stringify(f.Value)) }},
	"mac_address": {Func: func(f Field) Rule { return ValidMAC(f.Path, stringify(f.Value)) }},
	"ascii":       {Func: func(f Field) Rule { return ValidASCII(f.Path, stringify(f.Value)) }},
	"starts_with": {Func: affixRule("starts_with", strings.HasPrefix), MinParams: 1},
	"ends_with":   {Func: affixRule("ends_with", strings.HasSuffix), MinParams: 1},

	// choices
	"in":     {Func: func(f Field) Rule { return InListString(f.Path, stringify(f.Value), f.Params) }, MinParams: 1},
	"not_in": {Func: func(f Field) Rule { return NotInListString(f.Path, stringify(f.Value), f.Params) }, MinParams: 1},

	// sizes
	"min":     {Func: minRule, MinParams: 1, NumericParams: true},
	"max":     {Func: maxRule, MinParams: 1, NumericParams: true},
	"between": {Func: betweenRule, MinParams: 2, NumericParams: true},
	"size":    {Func: sizeRule, MinParams: 1, NumericParams: true},
	"gt":      {Func: compareRule("gt", "greater than", func(a, b float64) bool { return a > b }), MinParams: 1},
	"gte":     {Func: compareRule("gte", "greater than or equal to", func(a, b float64) bool { return a >= b }), MinParams: 1},
	"lt":      {Func: compareRule("lt", "less than", func(a, b float64) bool { return a < b }), MinParams: 1},
	"lte":     {Func: compareRule("lte", "less than or equal to", func(a, b float64) bool { return a <= b }), MinParams: 1},

	// dates
	"date":        {Func: dateRule},
	"date_format": {Func: dateFormatRule, MinParams: 1},
	"after":       {Func: afterRule, MinParams: 1},
	"before":      {Func: beforeRule, MinParams: 1},

	// cross-field and cross-entry
	"same":      {Func: sameRule, MinParams: 1},
	"different": {Func: differentRule, MinParams: 1},
	"distinct":  {Func: distinctRule},
}

func fieldError(f Field, message, key string, values map[string]any) ValidationError {
	return newError(f.Path, message, key, values)
}

// uuidRule accepts an optional version parameter ("uuid:4").
func uuidRule(f Field) Rule {
	if len(f.Params) > 0 {
		version, _ := strconv.Atoi(f.Params[0])
		return ValidUUIDVersion(f.Path, stringify(f.Value), version)
	}
	return ValidUUID(f.Path, stringify(f.Value))
}

func requiredRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			return !isEmpty(f.Value, f.Present)
		},
		Error: fieldError(f, "field is required", "validation.required", nil),
	}
}

// matchesAny compares a referenced value with textual rule parameters.
func matchesAny(v any, candidates []string) bool {
	s := stringify(v)
	b, isBool := v.(bool)
	for _, c := range candidates {
		if c == s {
			return true
		}
		if isBool && ((b && c == "1") || (!b && c == "0")) {
			return true
		}
	}
	return false
}

func requiredIfRule(f Field) Rule {
	other := f.Params[0]
	otherValue, ok := f.Ref(other)
	needed := ok && matchesAny(otherValue, f.Params[1:])
	return Rule{
		Check: func() bool {
			return !needed || !isEmpty(f.Value, f.Present)
		},
		Error: fieldError(f,
			fmt.Sprintf("is required when %s is %s", other, stringify(otherValue)),
			"validation.required_if",
			map[string]any{"other": other, "value": stringify(otherValue)},
		),
	}
}

func requiredUnlessRule(f Field) Rule {
	other := f.Params[0]
	otherValue, _ := f.Ref(other)
	needed := !matchesAny(otherValue, f.Params[1:])
	return Rule{
		Check: func() bool {
			return !needed || !isEmpty(f.Value, f.Present)
		},
		Error: fieldError(f,
			fmt.Sprintf("is required unless %s is in %s", other, strings.Join(f.Params[1:], ", ")),
			"validation.required_unless",
			map[string]any{"other": other, "values": f.Params[1:]},
		),
	}
}

func requiredWithRule(f Field) Rule {
	needed := slices.ContainsFunc(f.Params, func(ref string) bool {
		v, ok := f.Ref(ref)
		return !isEmpty(v, ok)
	})
	return Rule{
		Check: func() bool {
			return !needed || !isEmpty(f.Value, f.Present)
		},
		Error: fieldError(f,
			fmt.Sprintf("is required when %s is present", strings.Join(f.Params, " / ")),
			"validation.required_with",
			map[string]any{"others": f.Params},
		),
	}
}

func requiredWithoutRule(f Field) Rule {
	needed := slices.ContainsFunc(f.Params, func(ref string) bool {
		v, ok := f.Ref(ref)
		return isEmpty(v, ok)
	})
	return Rule{
		Check: func() bool {
			return !needed || !isEmpty(f.Value, f.Present)
		},
		Error: fieldError(f,
			fmt.Sprintf("is required when %s is not present", strings.Join(f.Params, " / ")),
			"validation.required_without",
			map[string]any{"others": f.Params},
		),
	}
}

func presentRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			return f.Present
		},
		Error: fieldError(f, "must be present", "validation.present", nil),
	}
}

func stringRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			_, ok := f.Value.(string)
			return ok
		},
		Error: fieldError(f, "must be a string", "validation.string", nil),
	}
}

func numericRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			_, ok := toFloat(f.Value)
			return ok
		},
		Error: fieldError(f, "must be a number", "validation.numeric", nil),
	}
}

func integerRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			switch x := f.Value.(type) {
			case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
				return true
			case float32:
				return float64(x) == math.Trunc(float64(x))
			case float64:
				return x == math.Trunc(x)
			case string:
				_, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
				return err == nil
			}
			return false
		},
		Error: fieldError(f, "must be an integer", "validation.integer", nil),
	}
}

func booleanRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			switch x := f.Value.(type) {
			case bool:
				return true
			case string:
				return InListString(f.Path, strings.ToLower(strings.TrimSpace(x)), []string{"0", "1", "true", "false"}).Check()
			}
			if n, ok := toFloat(f.Value); ok && isNumber(f.Value) {
				return n == 0 || n == 1
			}
			return false
		},
		Error: fieldError(f, "must be true or false", "validation.boolean", nil),
	}
}

func arrayRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			switch reflect.ValueOf(f.Value).Kind() {
			case reflect.Slice, reflect.Array, reflect.Map:
				return true
			}
			return false
		},
		Error: fieldError(f, "must be a list", "validation.array", nil),
	}
}

func digitsRule(f Field) Rule {
	n, _ := strconv.Atoi(f.Params[0])
	s := stringify(f.Value)
	return Rule{
		Check: func() bool {
			return ValidNumericString(f.Path, s).Check() && len(s) == n
		},
		Error: fieldError(f, fmt.Sprintf("must be %d digits", n), "validation.digits", map[string]any{"digits": n}),
	}
}

func affixRule(name string, match func(s, affix string) bool) RuleFunc {
	return func(f Field) Rule {
		s := stringify(f.Value)
		return Rule{
			Check: func() bool {
				return slices.ContainsFunc(f.Params, func(affix string) bool { return match(s, affix) })
			},
			Error: fieldError(f,
				fmt.Sprintf("must %s one of: %s", strings.ReplaceAll(name, "_", " "), strings.Join(f.Params, ", ")),
				"validation."+name,
				map[string]any{"values": f.Params},
			),
		}
	}
}

// sizeKind tells how a size rule measures a value.
type sizeKind int

const (
	sizeNumeric sizeKind = iota
	sizeString
	sizeItems
)

// measure returns the size of the value: its number for numeric values (and numeric
// strings when the rule list declares numeric or integer), its rune count for strings
// and its element count for lists and maps.
func measure(f Field) (float64, sizeKind) {
	if isNumber(f.Value) {
		n, _ := toFloat(f.Value)
		return n, sizeNumeric
	}
	if s, ok := f.Value.(string); ok {
		if f.numeric {
			if n, ok := toFloat(s); ok {
				return n, sizeNumeric
			}
		}
		return float64(utf8.RuneCountInString(s)), sizeString
	}
	switch rv := reflect.ValueOf(f.Value); rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), sizeItems
	}
	return float64(utf8.RuneCountInString(stringify(f.Value))), sizeString
}

func numParam(f Field, i int) float64 {
	n, _ := strconv.ParseFloat(f.Params[i], 64)
	return n
}

func minRule(f Field) Rule {
	limit := numParam(f, 0)
	size, kind := measure(f)
	switch kind {
	case sizeNumeric:
		return MinNum(f.Path, size, limit)
	case sizeString:
		return MinLenString(f.Path, stringify(f.Value), int(limit))
	}
	return Rule{
		Check: func() bool {
			return size >= limit
		},
		Error: fieldError(f, fmt.Sprintf("must have at least %v items", limit), "validation.min_items", map[string]any{"min": limit}),
	}
}

func maxRule(f Field) Rule {
	limit := numParam(f, 0)
	size, kind := measure(f)
	switch kind {
	case sizeNumeric:
		return MaxNum(f.Path, size, limit)
	case sizeString:
		return MaxLenString(f.Path, stringify(f.Value), int(limit))
	}
	return Rule{
		Check: func() bool {
			return size <= limit
		},
		Error: fieldError(f, fmt.Sprintf("must have at most %v items", limit), "validation.max_items", map[string]any{"max": limit}),
	}
}

func betweenRule(f Field) Rule {
	lower, upper := numParam(f, 0), numParam(f, 1)
	size, kind := measure(f)
	key, unit := "validation.between", ""
	switch kind {
	case sizeString:
		key, unit = "validation.between_length", " characters"
	case sizeItems:
		key, unit = "validation.between_items", " items"
	}
	return Rule{
		Check: func() bool {
			return size >= lower && size <= upper
		},
		Error: fieldError(f,
			fmt.Sprintf("must be between %v and %v%s", lower, upper, unit),
			key,
			map[string]any{"min": lower, "max": upper},
		),
	}
}

func sizeRule(f Field) Rule {
	exact := numParam(f, 0)
	size, kind := measure(f)
	switch kind {
	case sizeString:
		return LenString(f.Path, stringify(f.Value), int(exact))
	case sizeItems:
		return Rule{
			Check: func() bool {
				return size == exact
			},
			Error: fieldError(f, fmt.Sprintf("must contain %v items", exact), "validation.size_items", map[string]any{"size": exact}),
		}
	}
	return Rule{
		Check: func() bool {
			return size == exact
		},
		Error: fieldError(f, fmt.Sprintf("must be %v", exact), "validation.size", map[string]any{"size": exact}),
	}
}

// bound resolves a comparison parameter that is either a number or a reference to
// another attribute.
func (f Field) bound(param string) (float64, string, bool) {
	if n, err := strconv.ParseFloat(param, 64); err == nil {
		return n, param, true
	}
	v, ok := f.Ref(param)
	if !ok {
		return 0, param, false
	}
	n, ok := toFloat(v)
	return n, stringify(v), ok
}

func compareRule(name, verb string, cmp func(a, b float64) bool) RuleFunc {
	return func(f Field) Rule {
		limit, label, ok := f.bound(f.Params[0])
		value, valueOK := toFloat(f.Value)
		return Rule{
			Check: func() bool {
				return ok && valueOK && cmp(value, limit)
			},
			Error: fieldError(f, fmt.Sprintf("must be %s %s", verb, label), "validation."+name, map[string]any{"value": label}),
		}
	}
}

func dateRule(f Field) Rule {
	return Rule{
		Check: func() bool {
			_, ok := toTime(f.Value)
			return ok
		},
		Error: fieldError(f, "must be a valid date", "validation.date", nil),
	}
}

func dateFormatRule(f Field) Rule {
	layout := f.Params[0]
	return Rule{
		Check: func() bool {
			s, ok := f.Value.(string)
			if !ok {
				return false
			}
			_, err := time.Parse(layout, strings.TrimSpace(s))
			return err == nil
		},
		Error: fieldError(f, "must match the format "+layout, "validation.date_format", map[string]any{"format": layout}),
	}
}

// dateParam resolves a date parameter: "today", "now", a literal date or a reference
// to another attribute.
func (f Field) dateParam(param string) (time.Time, bool) {
	switch param {
	case "now":
		return time.Now(), true
	case "today":
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	}
	if t, ok := toTime(param); ok {
		return t, true
	}
	v, ok := f.Ref(param)
	if !ok {
		return time.Time{}, false
	}
	return toTime(v)
}

func afterRule(f Field) Rule {
	value, ok := toTime(f.Value)
	limit, limitOK := f.dateParam(f.Params[0])
	if !ok || !limitOK {
		return Rule{
			Check: func() bool { return false },
			Error: fieldError(f, "date must be after "+f.Params[0], "validation.date_after", map[string]any{"after": f.Params[0]}),
		}
	}
	return DateAfter(f.Path, value, limit)
}

func beforeRule(f Field) Rule {
	value, ok := toTime(f.Value)
	limit, limitOK := f.dateParam(f.Params[0])
	if !ok || !limitOK {
		return Rule{
			Check: func() bool { return false },
			Error: fieldError(f, "date must be before "+f.Params[0], "validation.date_before", map[string]any{"before": f.Params[0]}),
		}
	}
	return DateBefore(f.Path, value, limit)
}

func sameRule(f Field) Rule {
	other := f.Params[0]
	otherValue, ok := f.Ref(other)
	return Rule{
		Check: func() bool {
			return ok && stringify(otherValue) == stringify(f.Value)
		},
		Error: fieldError(f, "must match "+other, "validation.same", map[string]any{"other": other}),
	}
}

func differentRule(f Field) Rule {
	other := f.Params[0]
	otherValue, ok := f.Ref(other)
	return Rule{
		Check: func() bool {
			return !ok || stringify(otherValue) != stringify(f.Value)
		},
		Error: fieldError(f, "must be different from "+other, "validation.different", map[string]any{"other": other}),
	}
}

// distinctRule fails when another entry holds the same value in the same field.
// "distinct:ignore_case" compares case-folded text.
func distinctRule(f Field) Rule {
	normalize := stringify
	if slices.Contains(f.Params, "ignore_case") {
		fold := cases.Fold()
		normalize = func(v any) string { return fold.String(stringify(v)) }
	}
	return Rule{
		Check: func() bool {
			own := normalize(f.Value)
			for other := range f.Column() {
				if normalize(other) == own {
					return false
				}
			}
			return true
		},
		Error: fieldError(f, "has a duplicate value", "validation.distinct", nil),
	}
}
