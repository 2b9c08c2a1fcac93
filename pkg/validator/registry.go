package validator

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strconv"
)

// RuleFunc builds the Rule for one field, in the same Rule{Check, Error} shape the
// helper constructors of this package return. Error.TranslationKey selects the
// default message and Error.TranslationValues feed its placeholders.
type RuleFunc func(f Field) Rule

// Definition describes a textual rule registered on an Engine.
type Definition struct {
	Func RuleFunc

	// Implicit rules run even when the value is missing or empty.
	Implicit bool

	// MinParams is the number of parameters the rule cannot work without.
	MinParams int

	// NumericParams requires every parameter to parse as a number.
	NumericParams bool
}

// control rules alter how the rest of the list is evaluated.
const (
	ruleBail      = "bail"
	ruleNullable  = "nullable"
	ruleSometimes = "sometimes"
)

func defaultDefinitions() map[string]Definition {
	return maps.Clone(builtinRules)
}

// check validates a spec against its definition before the engine runs.
func (d Definition) check(s Spec) error {
	if len(s.Params) < d.MinParams {
		return errors.Join(ErrInvalidRule, fmt.Errorf("%s expects at least %d parameter(s)", s.Name, d.MinParams))
	}
	if d.NumericParams {
		for _, p := range s.Params {
			if _, err := strconv.ParseFloat(p, 64); err != nil {
				return errors.Join(ErrInvalidRule, fmt.Errorf("%s: parameter %q is not a number", s.Name, p))
			}
		}
	}
	if s.Name == "regex" || s.Name == "not_regex" {
		if _, err := regexp.Compile(s.Params[0]); err != nil {
			return errors.Join(ErrInvalidRule, err)
		}
	}
	return nil
}
