package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/importkit/pkg/logger"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// Validator validates one batch of rows against an import spec.
type Validator interface {
	Validate(ctx context.Context, rows []rowvalidator.Row, spec rowvalidator.ImportSpec) (rowvalidator.Outcome, error)
}

// Summary describes a finished or interrupted run.
type Summary struct {
	RunID    uuid.UUID
	Chunks   int
	Rows     int
	Imported int
	Skipped  int
	Failures []rowvalidator.Failure
	Duration time.Duration
}

// Importer reads rows from a Source, validates them chunk by chunk and writes the
// rows that passed to a Sink.
type Importer struct {
	validator   Validator
	spec        rowvalidator.ImportSpec
	chunkSize   int
	maxFailures int
	runID       uuid.UUID
	logger      *slog.Logger
}

// New creates an importer validating with v against spec.
func New(v Validator, spec rowvalidator.ImportSpec, opts ...Option) (*Importer, error) {
	if v == nil {
		return nil, ErrValidatorNil
	}
	im := &Importer{
		validator: v,
		spec:      spec,
		chunkSize: 500,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im, nil
}

// Run imports every row of src. Chunks are validated sequentially; with a skip
// policy failed rows are left out, with an abort policy the first failed chunk
// stops the run with a *rowvalidator.ValidationError. The summary is returned
// in both cases.
func (im *Importer) Run(ctx context.Context, src Source, sink Sink) (Summary, error) {
	started := time.Now()
	sum := Summary{RunID: im.runID}
	if sum.RunID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return sum, errors.Join(ErrRunIDFailed, err)
		}
		sum.RunID = id
	}
	ctx = logger.WithRunID(ctx, sum.RunID)

	im.logger.InfoContext(ctx, "import started", slog.Int("chunk_size", im.chunkSize))

	var buf []rowvalidator.Row
	for {
		page, err := src.Next(ctx)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			sum.Duration = time.Since(started)
			return sum, errors.Join(ErrSourceFailed, err)
		}
		buf = append(buf, page...)

		for len(buf) >= im.chunkSize || (eof && len(buf) > 0) {
			n := min(im.chunkSize, len(buf))
			chunk := buf[:n:n]
			buf = buf[n:]
			if err := im.chunk(ctx, chunk, sink, &sum); err != nil {
				sum.Duration = time.Since(started)
				im.logger.ErrorContext(ctx, "import stopped", logger.Chunk(sum.Chunks), logger.Error(err))
				return sum, err
			}
		}

		if eof {
			break
		}
	}

	sum.Duration = time.Since(started)
	im.logger.InfoContext(ctx, "import finished",
		logger.Rows(sum.Rows),
		slog.Int("imported", sum.Imported),
		slog.Int("skipped", sum.Skipped),
		logger.Failures(len(sum.Failures)),
		logger.Duration(sum.Duration),
	)
	return sum, nil
}

func (im *Importer) chunk(ctx context.Context, rows []rowvalidator.Row, sink Sink, sum *Summary) error {
	sum.Chunks++
	sum.Rows += len(rows)

	outcome, err := im.validator.Validate(ctx, rows, im.spec)
	valid := rows
	switch outcome.Status {
	case rowvalidator.StatusPassed:
	case rowvalidator.StatusSkipped:
		skipped := outcome.SkippedRows()
		valid = slices.DeleteFunc(slices.Clone(rows), func(r rowvalidator.Row) bool {
			return slices.Contains(skipped, r.Index)
		})
		sum.Skipped += len(rows) - len(valid)
		sum.Failures = append(sum.Failures, outcome.Failures...)
		if im.maxFailures > 0 && len(sum.Failures) > im.maxFailures {
			return errors.Join(ErrTooManyFailures, err)
		}
	case rowvalidator.StatusAborted:
		sum.Failures = append(sum.Failures, outcome.Failures...)
		return err
	default:
		return errors.Join(ErrValidation, err)
	}

	if len(valid) == 0 {
		return nil
	}
	if err := sink.Put(ctx, valid); err != nil {
		return errors.Join(ErrSinkFailed, err)
	}
	sum.Imported += len(valid)
	im.logger.DebugContext(ctx, "chunk imported", logger.Chunk(sum.Chunks), logger.Rows(len(valid)))
	return nil
}
