package failurestore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// Record is a stored failure of one import run.
type Record struct {
	RunID     uuid.UUID            `json:"run_id" bson:"run_id"`
	Failure   rowvalidator.Failure `json:"failure" bson:"failure"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

// Store persists the failures of import runs. List returns records in the order
// they were saved.
type Store interface {
	Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error
	List(ctx context.Context, runID uuid.UUID) ([]Record, error)
}

// NewRecords stamps failures of one run with the same creation time.
func NewRecords(runID uuid.UUID, failures []rowvalidator.Failure) []Record {
	now := time.Now().UTC()
	records := make([]Record, len(failures))
	for i, f := range failures {
		records[i] = Record{RunID: runID, Failure: f, CreatedAt: now}
	}
	return records
}

// MemoryStore keeps failures in memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID][]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID][]Record)}
}

func (s *MemoryStore) Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error {
	if runID == uuid.Nil {
		return ErrMissingRunID
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(failures) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = append(s.runs[runID], NewRecords(runID, failures)...)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, runID uuid.UUID) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.runs[runID]), nil
}
