// Package s3store stores import failures in Amazon S3 or an S3-compatible
// service, one JSON object per failure:
//
//	<prefix>/<run id>/<time-ordered uuid>.json
//
// Usage:
//
//	var cfg s3store.Config
//	config.MustLoad(&cfg)
//
//	store, err := s3store.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
package s3store
