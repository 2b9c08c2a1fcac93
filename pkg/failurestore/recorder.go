package failurestore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/importkit/pkg/logger"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// Recorder saves skipped failures to a Store. It implements
// rowvalidator.SkipsOnFailure, so it can be attached to a rule set with
// WithFailureHandler or embedded in an import spec.
//
// The skip hook cannot fail the batch: save errors are logged and the last one
// is kept for Err.
type Recorder struct {
	store  Store
	runID  uuid.UUID
	logger *slog.Logger

	mu  sync.Mutex
	err error
}

// RecorderOption is a functional option for configuring a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets the logger for save errors.
func WithRecorderLogger(l *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRecorder creates a recorder saving failures of run runID to store.
func NewRecorder(store Store, runID uuid.UUID, opts ...RecorderOption) (*Recorder, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if runID == uuid.Nil {
		return nil, ErrMissingRunID
	}
	r := &Recorder{
		store:  store,
		runID:  runID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RunID returns the run the recorder saves failures for.
func (r *Recorder) RunID() uuid.UUID {
	return r.runID
}

func (r *Recorder) OnFailure(ctx context.Context, failures ...rowvalidator.Failure) {
	if len(failures) == 0 {
		return
	}
	if err := r.store.Save(ctx, r.runID, failures...); err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		first := failures[0]
		r.logger.ErrorContext(ctx, "failed to record import failures",
			logger.Store(fmt.Sprintf("%T", r.store)),
			logger.RunID(r.runID),
			logger.Failures(len(failures)),
			logger.Group("first_failure", logger.Row(first.Row), logger.Attribute(first.Attribute)),
			logger.Error(err),
		)
	}
}

// Err returns the last save error, or nil.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
