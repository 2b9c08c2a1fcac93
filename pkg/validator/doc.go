// Package validator validates tabular data against pipe-separated textual rules and
// provides the Rule helpers those rules are built from.
//
// The package has two layers. The helper layer constructs small Rule values that
// pair a Check function with translation-friendly error metadata; Apply evaluates
// a list of them into ValidationErrors. The engine layer parses textual rules such
// as "required|email" or "required_if:*.status,active", evaluates them against a
// whole collection of entries in one pass and collects failures into a Report
// keyed by attribute path ("3.email").
//
// # Architecture
//
// Each helper source file groups a family of rules (`string_rules.go`,
// `numeric_rules.go`, `date_rules.go`, etc.). The textual rules in
// `builtin_rules.go` are thin RuleFuncs over those helpers, so the same
// TranslationKey selects the default message in both layers.
//
// Core building blocks:
//   - Rule, ValidationError, ValidationErrors  helper layer
//   - Engine       parses and evaluates rule maps; configured with Option values
//   - Spec         structured form of one textual rule
//   - Checker      custom rule object, also accepted as a plain func
//   - Report       ordered error bag returned by Engine.Check
//
// Rule keys address "<entry>.<field>". A "*" entry segment applies the rules to
// every entry, and rule parameters starting with "*." reference a field of the
// same entry:
//
//	engine := validator.New()
//	err := engine.Check(ctx, entries, map[string]any{
//	    "*.email":   "required|email",
//	    "*.company": "required_if:*.type,business",
//	}, nil, map[string]string{"*.email": "e-mail"})
//	if report, ok := validator.AsReport(err); ok {
//	    for _, path := range report.Paths() {
//	        // report.Messages(path)
//	    }
//	}
//
// # Error Handling
//
// Engine.Check returns nil on success and a *Report when data fails validation.
// A broken rule set is reported with ErrUnknownRule, ErrInvalidRule or
// ErrDuplicateEntry before any data is inspected. ValidationErrors keeps its
// `Is`/`As` support for the helper layer.
//
// # Messages
//
// Default messages come from DefaultMessages and can be replaced with
// WithMessages. Per-call custom messages are looked up as "<attribute>.<rule>",
// then "<attribute>", then "<rule>"; wildcard keys match any entry.
package validator
