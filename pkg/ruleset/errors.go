package ruleset

import "errors"

var (
	// ErrInvalidRuleSet is returned when a rule set document is malformed or incomplete.
	ErrInvalidRuleSet = errors.New("invalid rule set")

	// ErrLoadRuleSet is returned when a rule set file cannot be read.
	ErrLoadRuleSet = errors.New("failed to load rule set")
)
