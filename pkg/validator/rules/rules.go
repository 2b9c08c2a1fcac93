// Package rules builds structured validator.Spec values, the typed alternative to
// textual rule strings. rules.RequiredIf("status", "active") is equivalent to
// "required_if:status,active".
package rules

import (
	"strconv"

	"github.com/dmitrymomot/importkit/pkg/validator"
)

func spec(name string, params ...string) validator.Spec {
	return validator.Spec{Name: name, Params: params}
}

func num(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Control rules.

func Bail() validator.Spec { return spec("bail") }
func Nullable() validator.Spec { return spec("nullable") }
func Sometimes() validator.Spec { return spec("sometimes") }

// Presence.

func Required() validator.Spec { return spec("required") }
func Present() validator.Spec { return spec("present") }

// RequiredIf requires the field when the other field equals one of values.
func RequiredIf(other string, values ...string) validator.Spec {
	return spec("required_if", append([]string{other}, values...)...)
}

// RequiredUnless requires the field unless the other field equals one of values.
func RequiredUnless(other string, values ...string) validator.Spec {
	return spec("required_unless", append([]string{other}, values...)...)
}

// RequiredWith requires the field when any of the other fields is filled.
func RequiredWith(others ...string) validator.Spec {
	return spec("required_with", others...)
}

// RequiredWithout requires the field when any of the other fields is empty.
func RequiredWithout(others ...string) validator.Spec {
	return spec("required_without", others...)
}

// Types and formats.

func String() validator.Spec { return spec("string") }
func Numeric() validator.Spec { return spec("numeric") }
func Integer() validator.Spec { return spec("integer") }
func Boolean() validator.Spec { return spec("boolean") }
func Array() validator.Spec { return spec("array") }
func Email() validator.Spec { return spec("email") }
func URL() validator.Spec { return spec("url") }
func UUID() validator.Spec { return spec("uuid") }
func UUIDVersion(v int) validator.Spec { return spec("uuid", strconv.Itoa(v)) }
func IP() validator.Spec { return spec("ip") }
func IPv4() validator.Spec { return spec("ipv4") }
func IPv6() validator.Spec { return spec("ipv6") }
func MACAddress() validator.Spec { return spec("mac_address") }
func ASCII() validator.Spec { return spec("ascii") }
func Alpha() validator.Spec { return spec("alpha") }
func AlphaNum() validator.Spec { return spec("alpha_num") }
func Date() validator.Spec { return spec("date") }

func Digits(n int) validator.Spec { return spec("digits", strconv.Itoa(n)) }

// Regex keeps the pattern as a single parameter, commas and pipes included.
func Regex(pattern string) validator.Spec { return spec("regex", pattern) }
func NotRegex(pattern string) validator.Spec { return spec("not_regex", pattern) }

// DateFormat takes a Go time layout, e.g. "02.01.2006".
func DateFormat(layout string) validator.Spec { return spec("date_format", layout) }

func StartsWith(prefixes ...string) validator.Spec { return spec("starts_with", prefixes...) }
func EndsWith(suffixes ...string) validator.Spec { return spec("ends_with", suffixes...) }

// Choices.

func In(values ...string) validator.Spec { return spec("in", values...) }
func NotIn(values ...string) validator.Spec { return spec("not_in", values...) }

// Sizes.

func Min(n float64) validator.Spec { return spec("min", num(n)) }
func Max(n float64) validator.Spec { return spec("max", num(n)) }
func Between(lo, hi float64) validator.Spec { return spec("between", num(lo), num(hi)) }
func Size(n float64) validator.Spec { return spec("size", num(n)) }
func Gt(numberOrField string) validator.Spec { return spec("gt", numberOrField) }
func Gte(numberOrField string) validator.Spec { return spec("gte", numberOrField) }
func Lt(numberOrField string) validator.Spec { return spec("lt", numberOrField) }
func Lte(numberOrField string) validator.Spec { return spec("lte", numberOrField) }

// Dates. The parameter is "now", "today", a date or another field.

func After(dateOrField string) validator.Spec { return spec("after", dateOrField) }
func Before(dateOrField string) validator.Spec { return spec("before", dateOrField) }

// Cross-field and cross-row.

func Same(other string) validator.Spec { return spec("same", other) }
func Different(other string) validator.Spec { return spec("different", other) }

// Distinct fails when another row holds the same value in this column.
func Distinct(ignoreCase bool) validator.Spec {
	if ignoreCase {
		return spec("distinct", "ignore_case")
	}
	return spec("distinct")
}
