package rowvalidator

import "context"

// ImportSpec describes how a batch is validated. It must implement either
// FixedRuleProvider or BatchRuleProvider, and may implement MessageProvider,
// AttributeProvider and SkipsOnFailure.
type ImportSpec any

// FixedRuleProvider supplies a rule set that does not depend on the batch.
// Keys are column names; bare names apply to every row.
type FixedRuleProvider interface {
	Rules() map[string]any
}

// BatchRuleProvider supplies a rule set computed from the whole batch, e.g. to
// build an "in" list from the values of another column.
type BatchRuleProvider interface {
	RulesFor(rows []Row) map[string]any
}

// MessageProvider supplies custom messages keyed by "<column>" (every rule of the
// column) or "<column>.<rule>".
type MessageProvider interface {
	CustomMessages() map[string]string
}

// AttributeProvider supplies display names for columns.
type AttributeProvider interface {
	CustomAttributes() map[string]string
}

// SkipsOnFailure selects the skip policy: failed rows are handed to OnFailure
// and the batch continues instead of aborting.
type SkipsOnFailure interface {
	OnFailure(ctx context.Context, failures ...Failure)
}

// RulesFunc adapts a plain function to FixedRuleProvider.
type RulesFunc func() map[string]any

func (f RulesFunc) Rules() map[string]any { return f() }

// BatchRulesFunc adapts a plain function to BatchRuleProvider.
type BatchRulesFunc func(rows []Row) map[string]any

func (f BatchRulesFunc) RulesFor(rows []Row) map[string]any { return f(rows) }

// Fixed returns an ImportSpec with a fixed rule set.
func Fixed(rules map[string]any) ImportSpec {
	return RulesFunc(func() map[string]any { return rules })
}

// Batch returns an ImportSpec whose rules are computed from the batch.
func Batch(fn func(rows []Row) map[string]any) ImportSpec {
	return BatchRulesFunc(fn)
}

// resolveRules picks the rule set from the import spec's declared capability.
func resolveRules(spec ImportSpec, rows []Row) (map[string]any, error) {
	switch p := spec.(type) {
	case FixedRuleProvider:
		return p.Rules(), nil
	case BatchRuleProvider:
		return p.RulesFor(rows), nil
	}
	return nil, ErrNoRules
}

func customMessages(spec ImportSpec) map[string]string {
	if p, ok := spec.(MessageProvider); ok {
		return p.CustomMessages()
	}
	return nil
}

func customAttributes(spec ImportSpec) map[string]string {
	if p, ok := spec.(AttributeProvider); ok {
		return p.CustomAttributes()
	}
	return nil
}
