package importer

import (
	"context"
	"io"

	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// Source produces rows in pages of any size. Next returns io.EOF once every row
// has been read; it may return rows together with io.EOF.
type Source interface {
	Next(ctx context.Context) ([]rowvalidator.Row, error)
}

// Sink stores rows that passed validation.
type Sink interface {
	Put(ctx context.Context, rows []rowvalidator.Row) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(ctx context.Context, rows []rowvalidator.Row) error

func (f SinkFunc) Put(ctx context.Context, rows []rowvalidator.Row) error {
	return f(ctx, rows)
}

// SliceSource serves rows from memory in pages of pageSize rows.
type SliceSource struct {
	rows     []rowvalidator.Row
	pageSize int
}

// NewSliceSource creates a source over rows. A pageSize below 1 serves every row
// in one page.
func NewSliceSource(rows []rowvalidator.Row, pageSize int) *SliceSource {
	if pageSize < 1 {
		pageSize = max(len(rows), 1)
	}
	return &SliceSource{rows: rows, pageSize: pageSize}
}

func (s *SliceSource) Next(ctx context.Context) ([]rowvalidator.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.rows) == 0 {
		return nil, io.EOF
	}
	n := min(s.pageSize, len(s.rows))
	page := s.rows[:n:n]
	s.rows = s.rows[n:]
	return page, nil
}
