package failurestore_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
	"github.com/dmitrymomot/importkit/pkg/ruleset"
)

func failure(row int, attr string) rowvalidator.Failure {
	return rowvalidator.Failure{
		Row:       row,
		Attribute: attr,
		Errors:    []string{"The " + attr + " field is required."},
		Values:    map[string]any{attr: ""},
	}
}

type brokenStore struct{ err error }

func (s brokenStore) Save(context.Context, uuid.UUID, ...rowvalidator.Failure) error { return s.err }

func (s brokenStore) List(context.Context, uuid.UUID) ([]failurestore.Record, error) {
	return nil, s.err
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists failures in save order per run", func(t *testing.T) {
		t.Parallel()

		store := failurestore.NewMemoryStore()
		run, other := uuid.New(), uuid.New()

		require.NoError(t, store.Save(ctx, run, failure(1, "email"), failure(3, "age")))
		require.NoError(t, store.Save(ctx, other, failure(0, "name")))
		require.NoError(t, store.Save(ctx, run, failure(7, "email")))

		records, err := store.List(ctx, run)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, 1, records[0].Failure.Row)
		assert.Equal(t, 3, records[1].Failure.Row)
		assert.Equal(t, 7, records[2].Failure.Row)
		for _, rec := range records {
			assert.Equal(t, run, rec.RunID)
			assert.False(t, rec.CreatedAt.IsZero())
		}
	})

	t.Run("returns nothing for an unknown run", func(t *testing.T) {
		t.Parallel()

		records, err := failurestore.NewMemoryStore().List(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("rejects a nil run id", func(t *testing.T) {
		t.Parallel()

		err := failurestore.NewMemoryStore().Save(ctx, uuid.Nil, failure(0, "email"))
		require.ErrorIs(t, err, failurestore.ErrMissingRunID)
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := failurestore.NewMemoryStore().Save(cancelled, uuid.New(), failure(0, "email"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("validates its arguments", func(t *testing.T) {
		t.Parallel()

		_, err := failurestore.NewRecorder(nil, uuid.New())
		require.ErrorIs(t, err, failurestore.ErrStoreNil)

		_, err = failurestore.NewRecorder(failurestore.NewMemoryStore(), uuid.Nil)
		require.ErrorIs(t, err, failurestore.ErrMissingRunID)
	})

	t.Run("keeps the last save error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		rec, err := failurestore.NewRecorder(brokenStore{err: boom}, uuid.New(),
			failurestore.WithRecorderLogger(quietLogger()),
		)
		require.NoError(t, err)
		require.NoError(t, rec.Err())

		rec.OnFailure(ctx, failure(0, "email"))
		require.ErrorIs(t, rec.Err(), boom)
	})

	t.Run("logs the store and the first failed row", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		runID := uuid.New()
		rec, err := failurestore.NewRecorder(brokenStore{err: errors.New("timeout")}, runID,
			failurestore.WithRecorderLogger(slog.New(slog.NewJSONHandler(buf, nil))),
		)
		require.NoError(t, err)

		rec.OnFailure(ctx, failure(3, "email"), failure(5, "name"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "failed to record import failures", entry["msg"])
		assert.Equal(t, "failurestore_test.brokenStore", entry["store"])
		assert.Equal(t, runID.String(), entry["run_id"])
		assert.Equal(t, float64(2), entry["failures"])
		assert.Equal(t, map[string]any{"row": float64(3), "attribute": "email"}, entry["first_failure"])
		assert.Equal(t, "timeout", entry["error"])
	})

	t.Run("does not log when the save succeeds", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		rec, err := failurestore.NewRecorder(failurestore.NewMemoryStore(), uuid.New(),
			failurestore.WithRecorderLogger(slog.New(slog.NewJSONHandler(buf, nil))),
		)
		require.NoError(t, err)

		rec.OnFailure(ctx, failure(0, "email"))
		assert.Empty(t, buf.String())
		assert.NoError(t, rec.Err())
	})

	t.Run("records failures skipped by a rule set", func(t *testing.T) {
		t.Parallel()

		rs, err := ruleset.Parse([]byte(`
name: contacts
columns:
  email:
    rules: required|email
`))
		require.NoError(t, err)

		store := failurestore.NewMemoryStore()
		rec, err := failurestore.NewRecorder(store, uuid.New())
		require.NoError(t, err)

		rows := rowvalidator.Rows(
			map[string]any{"email": "ann@example.com"},
			map[string]any{"email": "nope"},
		)
		outcome, err := rowvalidator.New(nil).Validate(ctx, rows, rs.WithFailureHandler(rec))
		require.ErrorIs(t, err, rowvalidator.ErrRowSkipped)
		assert.Equal(t, []int{1}, outcome.SkippedRows())

		records, err := store.List(ctx, rec.RunID())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1, records[0].Failure.Row)
		assert.Equal(t, "email", records[0].Failure.Attribute)
		assert.Equal(t, outcome.Failures[0], records[0].Failure)
		assert.NoError(t, rec.Err())
	})
}
