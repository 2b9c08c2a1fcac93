// Package logger builds *slog.Logger values for importkit and keeps attribute
// naming consistent across packages.
//
// New creates a logger configured by Option functions: output format, level,
// static attributes and ContextExtractor callbacks that inject attributes from a
// context.Context on every record. The import run id stored with WithRunID is
// always extracted, so every line logged while a run is in progress carries
// "run_id". FromConfig builds the same logger from env configuration (LOG_LEVEL,
// LOG_FORMAT, APP_ENV, APP_NAME) loaded with config.Load.
//
// Helper constructors in attr.go (Row, Rows, Attribute, Failures, Chunk, Store,
// Error, Errors, ...) return the slog.Attr values used by the rest of the module.
//
// # Usage
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log, err := logger.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	logger.SetAsDefault(log)
//
//	ctx = logger.WithRunID(ctx, runID)
//	log.InfoContext(ctx, "chunk validated", logger.Rows(500), logger.Failures(3))
//
// # Error Handling
//
// Error and Errors return an empty attribute for nil errors, so they can be passed
// without a nil check:
//
//	log.Info("chunk stored", logger.Error(err))
package logger
