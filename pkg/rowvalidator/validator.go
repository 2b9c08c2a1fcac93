package rowvalidator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/importkit/pkg/logger"
	"github.com/dmitrymomot/importkit/pkg/validator"
)

// Engine validates a collection of entries against a rule map. It returns nil
// on success, a *validator.Report when rules are violated and any other error
// for a broken rule set. *validator.Engine implements it.
type Engine interface {
	Check(ctx context.Context, entries []validator.Entry, rules map[string]any, messages, attributes map[string]string) error
}

// RowValidator validates whole batches of rows with a single engine call and
// maps the engine's "<row>.<column>" report back to row failures. It holds no
// state between calls and is safe for concurrent use.
type RowValidator struct {
	engine Engine
	logger *slog.Logger
}

// Option configures a RowValidator.
type Option func(*RowValidator)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *RowValidator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a RowValidator. A nil engine means validator.New().
func New(engine Engine, opts ...Option) *RowValidator {
	if engine == nil {
		engine = validator.New()
	}
	v := &RowValidator{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks rows against the rules supplied by spec.
//
// On success it returns an Outcome with StatusPassed and a nil error. When rules
// are violated and spec implements SkipsOnFailure, the hook receives every
// failure, and Validate returns StatusSkipped with a *RowSkippedError. Otherwise
// it returns StatusAborted with a *ValidationError. Any other error means the
// batch was not validated and the Outcome is zero.
func (v *RowValidator) Validate(ctx context.Context, rows []Row, spec ImportSpec) (Outcome, error) {
	rules, err := resolveRules(spec, rows)
	if err != nil {
		return Outcome{}, err
	}
	if len(rows) == 0 {
		return Outcome{Status: StatusPassed}, nil
	}

	rules = FormatRules(rules)
	messages := FormatKeys(customMessages(spec))
	attributes := FormatKeys(customAttributes(spec))

	entries := make([]validator.Entry, len(rows))
	byKey := make(map[string]Row, len(rows))
	for i, row := range rows {
		entries[i] = validator.Entry{Key: row.key(), Fields: row.Values}
		byKey[row.key()] = row
	}

	v.logger.DebugContext(ctx, "validating rows",
		logger.Component("rowvalidator"),
		logger.Rows(len(rows)),
		slog.Int("rules", len(rules)),
	)

	err = v.engine.Check(ctx, entries, rules, messages, attributes)
	if err == nil {
		return Outcome{Status: StatusPassed}, nil
	}
	report, ok := validator.AsReport(err)
	if !ok {
		return Outcome{}, err
	}

	failures, err := decompose(report, byKey, attributes)
	if err != nil {
		return Outcome{}, err
	}

	if hook, ok := spec.(SkipsOnFailure); ok {
		hook.OnFailure(ctx, failures...)
		skipped := &RowSkippedError{Failures: failures}
		v.logger.WarnContext(ctx, "rows skipped",
			logger.Component("rowvalidator"),
			logger.Rows(len(skipped.SkippedRows())),
			logger.Failures(len(failures)),
		)
		return Outcome{Status: StatusSkipped, Failures: failures}, skipped
	}

	v.logger.InfoContext(ctx, "batch aborted",
		logger.Component("rowvalidator"),
		logger.Rows(len(rows)),
		logger.Failures(len(failures)),
	)
	return Outcome{Status: StatusAborted, Failures: failures}, &ValidationError{Report: report, Failures: failures}
}

// decompose builds one Failure per reported attribute path, in report order.
func decompose(report *validator.Report, rows map[string]Row, attributes map[string]string) ([]Failure, error) {
	paths := report.Paths()
	failures := make([]Failure, 0, len(paths))
	for _, path := range paths {
		key, column, _ := strings.Cut(path, ".")
		row, ok := rows[key]
		if _, err := strconv.Atoi(key); err != nil || !ok || column == "" {
			return nil, errors.Join(ErrInconsistentReport, fmt.Errorf("attribute path %q", path), report)
		}

		attribute := column
		if name, ok := attributes[wildcard+column]; ok {
			attribute = name
		}

		messages := report.Messages(path)
		for i, m := range messages {
			messages[i] = strings.ReplaceAll(m, path, attribute)
		}

		failures = append(failures, Failure{
			Row:       row.Index,
			Attribute: attribute,
			Errors:    messages,
			Values:    row.Values,
		})
	}
	return failures, nil
}
