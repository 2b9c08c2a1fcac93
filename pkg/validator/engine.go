package validator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Engine validates a whole collection of entries against a rule map in one pass.
// Rule keys address attributes as "<entry>.<field>", where <entry> may be "*" to
// apply the rules to every entry. An Engine is immutable after New and safe for
// concurrent use.
type Engine struct {
	rules   map[string]Definition
	catalog map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRule registers an additional textual rule, or replaces a built-in one.
func WithRule(name string, def Definition) Option {
	return func(e *Engine) {
		if name != "" && def.Func != nil {
			e.rules[name] = def
		}
	}
}

// WithMessages overrides entries of the default message catalog, e.g. with
// translated templates.
func WithMessages(catalog map[string]string) Option {
	return func(e *Engine) {
		maps.Copy(e.catalog, catalog)
	}
}

// New creates an Engine with the built-in rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:   defaultDefinitions(),
		catalog: maps.Clone(DefaultMessages),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// invocation is one compiled rule of a field's rule list.
type invocation struct {
	spec    Spec
	def     Definition
	checker Checker
}

// fieldRules is the compiled rule list of one rule key.
type fieldRules struct {
	pattern   string
	list      []invocation
	bail      bool
	nullable  bool
	sometimes bool
	numeric   bool
}

// Check validates entries against rules. It returns nil when every rule passes, a
// *Report when at least one rule fails, and a plain error for a broken rule set or a
// canceled context. Messages and attributes are optional overrides keyed like rules.
//
// The report lists failures entry by entry in collection order, and rule keys in
// sorted order within an entry.
func (e *Engine) Check(ctx context.Context, entries []Entry, rules map[string]any, messages, attributes map[string]string) error {
	data, err := newDataset(entries)
	if err != nil {
		return err
	}

	compiled := make([]fieldRules, 0, len(rules))
	for _, key := range slices.Sorted(maps.Keys(rules)) {
		fr, err := e.compile(key, rules[key])
		if err != nil {
			return err
		}
		compiled = append(compiled, fr)
	}

	f := newFormatter(e.catalog, messages, attributes)
	report := NewReport()

	for _, entry := range data.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, fr := range compiled {
			key, field, hasField := strings.Cut(fr.pattern, ".")
			if !hasField || (key != "*" && key != entry.Key) {
				continue
			}
			e.evaluate(ctx, data, fr, entry.Key, field, f, report)
		}
	}

	// Keys that address no entry are evaluated once against the collection itself.
	for _, fr := range compiled {
		key, field, hasField := strings.Cut(fr.pattern, ".")
		if hasField && (key == "*" || data.has(key)) {
			continue
		}
		e.evaluate(ctx, data, fr, key, field, f, report)
	}

	if report.IsEmpty() {
		return nil
	}
	return report
}

func (e *Engine) evaluate(ctx context.Context, data *dataset, fr fieldRules, entryKey, name string, f *formatter, report *Report) {
	path := entryKey
	if name != "" {
		path = entryKey + "." + name
	}
	value, present := data.lookup(path)
	if fr.sometimes && !present {
		return
	}
	empty := isEmpty(value, present)
	if fr.nullable && empty {
		return
	}

	field := Field{
		Path:    path,
		Name:    name,
		Value:   value,
		Present: present,
		entry:   entryKey,
		numeric: fr.numeric,
		data:    data,
	}

	for _, inv := range fr.list {
		if inv.checker != nil {
			if empty {
				continue
			}
			failed := false
			inv.checker.Check(ctx, path, value, func(message string) {
				failed = true
				report.Add(path, f.replace(message, path, nil))
			})
			if failed && fr.bail {
				return
			}
			continue
		}

		if empty && !inv.def.Implicit {
			continue
		}
		field.Params = inv.spec.Params
		rule := inv.def.Func(field)
		if rule.Check() {
			continue
		}
		report.Add(path, f.message(path, inv.spec.Name, rule.Error))
		if fr.bail {
			return
		}
	}
}

// compile turns a rule expression into a fieldRules list. Accepted expressions are
// pipe-separated strings, Spec values, Checker implementations, plain functions with
// the CheckFunc signature, and lists of any of these.
func (e *Engine) compile(key string, expr any) (fieldRules, error) {
	fr := fieldRules{pattern: key}
	if err := e.add(&fr, expr); err != nil {
		return fieldRules{}, errors.Join(err, fmt.Errorf("rules for %q", key))
	}
	return fr, nil
}

func (e *Engine) add(fr *fieldRules, expr any) error {
	switch x := expr.(type) {
	case nil:
		return nil
	case string:
		for _, rule := range SplitRules(x) {
			if err := e.addSpec(fr, ParseSpec(rule)); err != nil {
				return err
			}
		}
	case Spec:
		return e.addSpec(fr, x)
	case Checker:
		fr.list = append(fr.list, invocation{checker: x})
	case func(ctx context.Context, attribute string, value any, fail func(message string)):
		fr.list = append(fr.list, invocation{checker: CheckFunc(x)})
	case []string:
		for _, rule := range x {
			if err := e.addSpec(fr, ParseSpec(rule)); err != nil {
				return err
			}
		}
	case []Spec:
		for _, s := range x {
			if err := e.addSpec(fr, s); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range x {
			if err := e.add(fr, item); err != nil {
				return err
			}
		}
	default:
		return errors.Join(ErrInvalidRule, fmt.Errorf("unsupported rule type %T", expr))
	}
	return nil
}

func (e *Engine) addSpec(fr *fieldRules, s Spec) error {
	switch s.Name {
	case "":
		return nil
	case ruleBail:
		fr.bail = true
		return nil
	case ruleNullable:
		fr.nullable = true
		return nil
	case ruleSometimes:
		fr.sometimes = true
		return nil
	case "numeric", "integer":
		fr.numeric = true
	}

	def, ok := e.rules[s.Name]
	if !ok {
		return errors.Join(ErrUnknownRule, fmt.Errorf("rule %q", s.Name))
	}
	if err := def.check(s); err != nil {
		return err
	}
	fr.list = append(fr.list, invocation{spec: s, def: def})
	return nil
}
