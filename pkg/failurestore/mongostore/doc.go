// Package mongostore stores import failures in MongoDB, one document per failure
// in the import_failures collection.
//
//	var cfg mongostore.Config
//	config.MustLoad(&cfg)
//
//	store, err := mongostore.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
package mongostore
