package importer

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option is a functional option for configuring an Importer.
type Option func(*Importer)

// WithConfig applies env configuration.
func WithConfig(cfg Config) Option {
	return func(im *Importer) {
		WithChunkSize(cfg.ChunkSize)(im)
		WithMaxFailures(cfg.MaxFailures)(im)
	}
}

// WithChunkSize sets how many rows are validated per engine call.
func WithChunkSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.chunkSize = n
		}
	}
}

// WithMaxFailures stops the run once more than n failures were skipped.
// Zero means no limit.
func WithMaxFailures(n int) Option {
	return func(im *Importer) {
		if n >= 0 {
			im.maxFailures = n
		}
	}
}

// WithRunID sets the run identifier instead of a generated one.
func WithRunID(id uuid.UUID) Option {
	return func(im *Importer) {
		if id != uuid.Nil {
			im.runID = id
		}
	}
}

// WithLogger sets the logger for the importer.
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}
