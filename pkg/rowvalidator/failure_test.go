package rowvalidator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

func TestFailure(t *testing.T) {
	t.Parallel()

	f := rowvalidator.Failure{
		Row:       4,
		Attribute: "Age (years)",
		Errors:    []string{"The Age (years) field must be at least 0.", "The Age (years) field must be even."},
		Values:    map[string]any{"name": "Bob", "age": -1, "row": "ignored"},
	}

	t.Run("implements error", func(t *testing.T) {
		assert.Equal(t, "row 4: The Age (years) field must be at least 0. The Age (years) field must be even.", f.Error())
	})

	t.Run("flattens into a map", func(t *testing.T) {
		m := f.ToMap()
		assert.Equal(t, "Bob", m["name"])
		assert.Equal(t, -1, m["age"])
		assert.Equal(t, 4, m["row"])
		assert.Equal(t, "Age (years)", m["attribute"])
		assert.Equal(t, f.Errors, m["errors"])
		assert.Equal(t, "ignored", f.Values["row"], "values are not modified")
	})

	t.Run("encodes to json", func(t *testing.T) {
		data, err := json.Marshal(f)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"row": 4,
			"attribute": "Age (years)",
			"errors": ["The Age (years) field must be at least 0.", "The Age (years) field must be even."],
			"values": {"name": "Bob", "age": -1, "row": "ignored"}
		}`, string(data))
	})
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := rowvalidator.Rows(map[string]any{"a": 1}, map[string]any{"a": 2})
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 1, rows[1].Index)

	rows = rowvalidator.RowsFrom(2, map[string]any{"a": 1}, map[string]any{"a": 2})
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, map[string]any{"a": 2}, rows[1].Values)
}
