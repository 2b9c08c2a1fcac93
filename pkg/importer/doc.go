// Package importer runs a chunked import: rows are read from a Source, validated
// with a rowvalidator.RowValidator and written to a Sink.
//
// The import spec decides the failure policy. A spec implementing
// rowvalidator.SkipsOnFailure keeps the run going and leaves failed rows out of
// the sink; any other spec stops the run at the first chunk with a failure.
//
// Usage:
//
//	rv := rowvalidator.New(nil, rowvalidator.WithLogger(log))
//	im, err := importer.New(rv, spec,
//	    importer.WithChunkSize(1000),
//	    importer.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	sum, err := im.Run(ctx, importer.NewSliceSource(rows, 0), importer.SinkFunc(save))
//
// Configuration is read from the environment with config.Load[importer.Config]
// and applied with WithConfig:
//
//	IMPORT_CHUNK_SIZE    rows per validation call (default 500)
//	IMPORT_MAX_FAILURES  stop after this many skipped failures, 0 for no limit
package importer
