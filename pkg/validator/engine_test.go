package validator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/importkit/pkg/validator"
	"github.com/dmitrymomot/importkit/pkg/validator/rules"
)

func entries(rows ...map[string]any) []validator.Entry {
	out := make([]validator.Entry, len(rows))
	for i, fields := range rows {
		out[i] = validator.Entry{Key: string(rune('0' + i)), Fields: fields}
	}
	return out
}

func checkReport(t *testing.T, err error) *validator.Report {
	t.Helper()
	require.Error(t, err)
	report, ok := validator.AsReport(err)
	require.True(t, ok, "expected a report, got %v", err)
	return report
}

func TestEngine_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil when every rule passes", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"email": "jane@example.com", "age": 30},
			map[string]any{"email": "john@example.com", "age": 41},
		), map[string]any{
			"*.email": "required|email",
			"*.age":   "required|integer|min:18",
		}, nil, nil)

		assert.NoError(t, err)
	})

	t.Run("reports failing paths with default messages", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"email": "jane@example.com"},
			map[string]any{"email": ""},
			map[string]any{"email": "nope"},
		), map[string]any{"*.email": "required|email"}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"1.email", "2.email"}, report.Paths())
		assert.Equal(t, []string{"The 1.email field is required."}, report.Messages("1.email"))
		assert.Equal(t, []string{"The 2.email field must be a valid email address."}, report.Messages("2.email"))
	})

	t.Run("orders report entry by entry", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{},
			map[string]any{},
		), map[string]any{
			"*.b": "required",
			"*.a": "required",
		}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"0.a", "0.b", "1.a", "1.b"}, report.Paths())
	})

	t.Run("uses custom attribute names", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"email": ""},
		), map[string]any{"*.email": "required"}, nil, map[string]string{"*.email": "e-mail address"})

		report := checkReport(t, err)
		assert.Equal(t, []string{"The e-mail address field is required."}, report.Messages("0.email"))
	})

	t.Run("uses custom messages by attribute and rule", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"age": "17", "name": ""},
		), map[string]any{
			"*.age":  "numeric|min:18",
			"*.name": "required",
		}, map[string]string{
			"*.age.min": "Too young, at least :min.",
			"required":  ":attribute is missing.",
		}, map[string]string{"*.name": "Name"})

		report := checkReport(t, err)
		assert.Equal(t, []string{"Too young, at least 18."}, report.Messages("0.age"))
		assert.Equal(t, []string{"Name is missing."}, report.Messages("0.name"))
	})

	t.Run("uses a custom message for every rule of an attribute", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"code": "x"},
		), map[string]any{"*.code": "integer|size:3"}, map[string]string{"*.code": "Bad code."}, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"Bad code.", "Bad code."}, report.Messages("0.code"))
	})

	t.Run("skips non-implicit rules for empty values", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"age": ""},
			map[string]any{},
			map[string]any{"age": nil},
		), map[string]any{"*.age": "integer|min:18"}, nil, nil)

		assert.NoError(t, err)
	})

	t.Run("nullable skips the whole list for empty values", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"note": nil},
		), map[string]any{"*.note": "nullable|present"}, nil, nil)

		assert.NoError(t, err)
	})

	t.Run("sometimes skips missing fields only", func(t *testing.T) {
		engine := validator.New()
		rulesMap := map[string]any{"*.phone": "sometimes|required"}

		assert.NoError(t, engine.Check(ctx, entries(map[string]any{}), rulesMap, nil, nil))

		report := checkReport(t, engine.Check(ctx, entries(map[string]any{"phone": " "}), rulesMap, nil, nil))
		assert.True(t, report.Has("0.phone"))
	})

	t.Run("bail stops at the first failing rule", func(t *testing.T) {
		engine := validator.New()
		data := entries(map[string]any{"qty": "abc"})

		report := checkReport(t, engine.Check(ctx, data, map[string]any{"*.qty": "integer|min:5"}, nil, nil))
		assert.Len(t, report.Messages("0.qty"), 2)

		report = checkReport(t, engine.Check(ctx, data, map[string]any{"*.qty": "bail|integer|min:5"}, nil, nil))
		assert.Equal(t, []string{"The 0.qty field must be an integer."}, report.Messages("0.qty"))
	})

	t.Run("compares numeric strings by value when the list is numeric", func(t *testing.T) {
		engine := validator.New()
		data := entries(map[string]any{"age": "17"})

		report := checkReport(t, engine.Check(ctx, data, map[string]any{"*.age": "numeric|min:18"}, nil, nil))
		assert.Equal(t, []string{"The 0.age field must be at least 18."}, report.Messages("0.age"))

		report = checkReport(t, engine.Check(ctx, data, map[string]any{"*.age": "min:3"}, nil, nil))
		assert.Equal(t, []string{"The 0.age field must be at least 3 characters."}, report.Messages("0.age"))
	})

	t.Run("measures lists by element count", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"tags": []string{"a"}},
		), map[string]any{"*.tags": "array|min:2"}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"The 0.tags field must have at least 2 items."}, report.Messages("0.tags"))
	})

	t.Run("resolves same-entry references in required_if", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"type": "business", "company": ""},
			map[string]any{"type": "personal"},
			map[string]any{"type": "business", "company": "Acme"},
		), map[string]any{"*.company": "required_if:*.type,business"}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"0.company"}, report.Paths())
		assert.Equal(t, []string{"The 0.company field is required when type is business."}, report.Messages("0.company"))
	})

	t.Run("renders referenced attributes through custom names", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"password": "secret", "confirm": "other"},
		), map[string]any{"*.confirm": "same:*.password"}, nil, map[string]string{"*.password": "Password"})

		report := checkReport(t, err)
		assert.Equal(t, []string{"The 0.confirm field must match Password."}, report.Messages("0.confirm"))
	})

	t.Run("compares against another field", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"start": 5, "end": 3},
			map[string]any{"start": 1, "end": 9},
		), map[string]any{"*.end": "gt:*.start"}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"0.end"}, report.Paths())
		assert.Equal(t, []string{"The 0.end field must be greater than 5."}, report.Messages("0.end"))
	})

	t.Run("detects duplicates across entries", func(t *testing.T) {
		data := entries(
			map[string]any{"email": "A@example.com"},
			map[string]any{"email": "a@example.com"},
			map[string]any{"email": "b@example.com"},
		)
		engine := validator.New()

		assert.NoError(t, engine.Check(ctx, data, map[string]any{"*.email": "distinct"}, nil, nil))

		report := checkReport(t, engine.Check(ctx, data, map[string]any{"*.email": "distinct:ignore_case"}, nil, nil))
		assert.Equal(t, []string{"0.email", "1.email"}, report.Paths())
	})

	t.Run("accepts structured specs and lists", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"status": "active", "code": "AB"},
		), map[string]any{
			"*.status": rules.In("draft", "published"),
			"*.code":   []any{rules.Required(), "alpha", rules.Size(3)},
		}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"The selected 0.status is invalid."}, report.Messages("0.status"))
		assert.Equal(t, []string{"The 0.code field must be 3 characters."}, report.Messages("0.code"))
	})

	t.Run("keeps regex parameters intact", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"sku": "AB-1"},
			map[string]any{"sku": "AB|1"},
		), map[string]any{"*.sku": "required|regex:^[A-Z]{2}(-|\\|)[0-9]{1,3}$"}, nil, nil)

		assert.NoError(t, err)
	})

	t.Run("runs custom checkers", func(t *testing.T) {
		even := validator.CheckFunc(func(_ context.Context, _ string, value any, fail func(string)) {
			if n, ok := value.(int); ok && n%2 != 0 {
				fail("The :attribute field must be even.")
			}
		})

		err := validator.New().Check(ctx, entries(
			map[string]any{"n": 2},
			map[string]any{"n": 3},
		), map[string]any{"*.n": []any{"integer", even}}, nil, map[string]string{"*.n": "number"})

		report := checkReport(t, err)
		assert.Equal(t, []string{"The number field must be even."}, report.Messages("1.n"))
	})

	t.Run("accepts plain functions as checkers", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"n": "x"},
		), map[string]any{"*.n": func(_ context.Context, attribute string, _ any, fail func(string)) {
			fail(attribute + " rejected")
		}}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"0.n rejected"}, report.Messages("0.n"))
	})

	t.Run("evaluates keys that address no entry", func(t *testing.T) {
		err := validator.New().Check(ctx, entries(
			map[string]any{"name": "Jane"},
		), map[string]any{
			"0.name": "required",
			"5.name": "required",
		}, nil, nil)

		report := checkReport(t, err)
		assert.Equal(t, []string{"5.name"}, report.Paths())
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := validator.New().Check(canceled, entries(map[string]any{}), map[string]any{"*.a": "required"}, nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
		_, ok := validator.AsReport(err)
		assert.False(t, ok)
	})
}

func TestEngine_CheckConfigurationErrors(t *testing.T) {
	ctx := context.Background()
	data := entries(map[string]any{"a": "1"})

	tests := []struct {
		name  string
		rules map[string]any
		want  error
	}{
		{name: "unknown rule name", rules: map[string]any{"*.a": "required|shiny"}, want: validator.ErrUnknownRule},
		{name: "missing parameter", rules: map[string]any{"*.a": "min"}, want: validator.ErrInvalidRule},
		{name: "non numeric parameter", rules: map[string]any{"*.a": "max:ten"}, want: validator.ErrInvalidRule},
		{name: "broken regular expression", rules: map[string]any{"*.a": "regex:["}, want: validator.ErrInvalidRule},
		{name: "unsupported rule type", rules: map[string]any{"*.a": 42}, want: validator.ErrInvalidRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.New().Check(ctx, data, tt.rules, nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			_, isReport := validator.AsReport(err)
			assert.False(t, isReport)
		})
	}

	t.Run("duplicate entry keys", func(t *testing.T) {
		dup := []validator.Entry{{Key: "1"}, {Key: "1"}}
		err := validator.New().Check(ctx, dup, map[string]any{"*.a": "required"}, nil, nil)
		assert.True(t, errors.Is(err, validator.ErrDuplicateEntry))
	})
}

func TestEngine_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("registers additional rules", func(t *testing.T) {
		engine := validator.New(validator.WithRule("even", validator.Definition{
			Func: func(f validator.Field) validator.Rule {
				n, _ := f.Value.(int)
				return validator.Rule{
					Check: func() bool { return n%2 == 0 },
					Error: validator.ValidationError{
						Field:          f.Path,
						Message:        "must be even",
						TranslationKey: "validation.even",
					},
				}
			},
		}))

		report := checkReport(t, engine.Check(ctx, entries(map[string]any{"n": 3}), map[string]any{"*.n": "even"}, nil, nil))
		assert.Equal(t, []string{"The 0.n field must be even."}, report.Messages("0.n"))
	})

	t.Run("overrides the message catalog", func(t *testing.T) {
		engine := validator.New(validator.WithMessages(map[string]string{
			"validation.required": "Bitte :attribute angeben.",
		}))

		report := checkReport(t, engine.Check(ctx, entries(map[string]any{}), map[string]any{"*.name": "required"}, nil, map[string]string{"*.name": "Name"}))
		assert.Equal(t, []string{"Bitte Name angeben."}, report.Messages("0.name"))
	})

	t.Run("does not leak options between engines", func(t *testing.T) {
		_ = validator.New(validator.WithMessages(map[string]string{"validation.required": "changed"}))

		report := checkReport(t, validator.New().Check(ctx, entries(map[string]any{}), map[string]any{"*.name": "required"}, nil, nil))
		assert.Equal(t, []string{"The 0.name field is required."}, report.Messages("0.name"))
	})
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, validator.MatchPattern("*.email", "3.email"))
	assert.True(t, validator.MatchPattern("3.email", "3.email"))
	assert.False(t, validator.MatchPattern("*.email", "3.email.min"))
	assert.False(t, validator.MatchPattern("*.email", "email"))
	assert.True(t, validator.MatchPattern("*.a.b", "12.a.b"))
}
