// Package failurestore persists the failures of skipped rows so an import run
// can be reviewed after it finished.
//
// Store is implemented by MemoryStore and by the backends in the subpackages:
// pgstore (PostgreSQL), redisstore (Redis lists with a TTL), mongostore
// (MongoDB) and s3store (one JSON object per failure). MemoryStore keeps row
// values as saved. The JSON backends decode them with DecodeRecord or
// UnmarshalValues: integral numbers come back as int64, other numbers as
// float64. mongostore returns the BSON types (int32, int64, double).
//
// A Recorder connects a Store to the skip policy of rowvalidator:
//
//	runID := uuid.New()
//	rec, err := failurestore.NewRecorder(store, runID)
//	if err != nil {
//	    return err
//	}
//	spec := rs.WithFailureHandler(rec)
//	im, err := importer.New(rv, spec, importer.WithRunID(runID))
//
// After the run, rec.Err reports whether every failure was saved and
// store.List(ctx, runID) returns them.
package failurestore
