package failurestore

import "errors"

var (
	// ErrStoreNil is returned when a nil store is passed to NewRecorder.
	ErrStoreNil = errors.New("failure store cannot be nil")

	// ErrSaveFailed is returned when failures cannot be persisted.
	ErrSaveFailed = errors.New("failed to save failures")

	// ErrListFailed is returned when stored failures cannot be read back.
	ErrListFailed = errors.New("failed to list failures")

	// ErrMissingRunID is returned when the run id is uuid.Nil.
	ErrMissingRunID = errors.New("run id is required")
)
