package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

const (
	insertFailure = `INSERT INTO import_failures (run_id, row_index, attribute, errors, row_values, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectFailures = `SELECT run_id, row_index, attribute, errors, row_values, created_at
FROM import_failures WHERE run_id = $1 ORDER BY id`
)

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store keeps failures in the import_failures table. Run Migrate first.
type Store struct {
	db DB
}

var _ failurestore.Store = (*Store)(nil)

// New creates a store on db, usually the pool returned by Connect.
func New(db DB) *Store {
	return &Store{db: db}
}

// Save inserts failures in one batch round trip.
func (s *Store) Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error {
	if runID == uuid.Nil {
		return failurestore.ErrMissingRunID
	}
	if len(failures) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range failurestore.NewRecords(runID, failures) {
		args, err := insertArgs(rec)
		if err != nil {
			return errors.Join(failurestore.ErrSaveFailed, err)
		}
		batch.Queue(insertFailure, args...)
	}

	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Join(failurestore.ErrSaveFailed, err)
	}
	return nil
}

// List returns the failures of runID in insertion order.
func (s *Store) List(ctx context.Context, runID uuid.UUID) ([]failurestore.Record, error) {
	rows, err := s.db.Query(ctx, selectFailures, runID)
	if err != nil {
		return nil, errors.Join(failurestore.ErrListFailed, err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, errors.Join(failurestore.ErrListFailed, err)
	}
	return records, nil
}

func insertArgs(rec failurestore.Record) ([]any, error) {
	errs, err := json.Marshal(rec.Failure.Errors)
	if err != nil {
		return nil, err
	}
	values, err := json.Marshal(rec.Failure.Values)
	if err != nil {
		return nil, err
	}
	return []any{rec.RunID, rec.Failure.Row, rec.Failure.Attribute, errs, values, rec.CreatedAt}, nil
}

func scanRecord(row pgx.CollectableRow) (failurestore.Record, error) {
	var (
		rec          failurestore.Record
		errs, values []byte
		createdAt    time.Time
	)
	if err := row.Scan(&rec.RunID, &rec.Failure.Row, &rec.Failure.Attribute, &errs, &values, &createdAt); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(errs, &rec.Failure.Errors); err != nil {
		return rec, err
	}
	rowValues, err := failurestore.UnmarshalValues(values)
	if err != nil {
		return rec, err
	}
	rec.Failure.Values = rowValues
	rec.CreatedAt = createdAt.UTC()
	return rec, nil
}
