package rowvalidator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
	"github.com/dmitrymomot/importkit/pkg/validator"
	"github.com/dmitrymomot/importkit/pkg/validator/rules"
)

type positive struct{}

func (positive) Check(_ context.Context, _ string, value any, fail func(string)) {
	if n, ok := value.(int); ok && n <= 0 {
		fail("The :attribute field must be positive.")
	}
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	t.Run("qualifies bare keys", func(t *testing.T) {
		assert.Equal(t, "*.foo", rowvalidator.FormatKey("foo"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		assert.Equal(t, "*.foo", rowvalidator.FormatKey("*.foo"))
		assert.Equal(t, "*.foo", rowvalidator.FormatKey(rowvalidator.FormatKey("foo")))
	})

	t.Run("formats every key of a map", func(t *testing.T) {
		got := rowvalidator.FormatKeys(map[string]string{"age": "Age", "*.name": "Name"})
		assert.Equal(t, map[string]string{"*.age": "Age", "*.name": "Name"}, got)
	})

	t.Run("returns an empty map for nil", func(t *testing.T) {
		got := rowvalidator.FormatKeys(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFormatRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule string
		want string
	}{
		{name: "qualifies the required_if field", rule: "required_if:other,yes", want: "required_if:*.other,yes"},
		{name: "leaves a qualified required_if alone", rule: "required_if:*.other,yes", want: "required_if:*.other,yes"},
		{name: "rewrites only the cross-field segment", rule: "required|required_if:type,business|min:0", want: "required|required_if:*.type,business|min:0"},
		{name: "keeps several required_if values", rule: "required_if:status,active,pending", want: "required_if:*.status,active,pending"},
		{name: "qualifies every required_with field", rule: "required_with:phone,email", want: "required_with:*.phone,*.email"},
		{name: "qualifies the same field", rule: "same:password", want: "same:*.password"},
		{name: "leaves plain rules alone", rule: "required|min:0", want: "required|min:0"},
		{name: "leaves regex parameters alone", rule: "regex:^(a|b),c$", want: "regex:^(a|b),c$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowvalidator.FormatRule(tt.rule))
		})
	}

	t.Run("rewrites structured specs by field", func(t *testing.T) {
		got := rowvalidator.FormatRule(rules.RequiredIf("type", "business"))
		assert.Equal(t, validator.Spec{Name: "required_if", Params: []string{"*.type", "business"}}, got)
	})

	t.Run("does not modify the input spec", func(t *testing.T) {
		spec := rules.Different("email")
		_ = rowvalidator.FormatRule(spec)
		assert.Equal(t, []string{"email"}, spec.Params)
	})

	t.Run("recurses into lists and passes checkers through", func(t *testing.T) {
		got := rowvalidator.FormatRule([]any{
			"required",
			rules.RequiredUnless("country", "US"),
			[]string{"required_without:fax"},
			positive{},
		})

		assert.Equal(t, []any{
			"required",
			validator.Spec{Name: "required_unless", Params: []string{"*.country", "US"}},
			[]string{"required_without:*.fax"},
			positive{},
		}, got)
	})

	t.Run("does not modify input lists", func(t *testing.T) {
		in := []string{"required_if:a,1"}
		_ = rowvalidator.FormatRule(in)
		assert.Equal(t, []string{"required_if:a,1"}, in)
	})

	t.Run("formats a whole rule set", func(t *testing.T) {
		got := rowvalidator.FormatRules(map[string]any{
			"company": "required_if:type,business",
			"*.type":  "required",
		})
		assert.Equal(t, map[string]any{
			"*.company": "required_if:*.type,business",
			"*.type":    "required",
		}, got)
	})
}
