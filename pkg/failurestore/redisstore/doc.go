// Package redisstore stores import failures in Redis.
//
// The failures of a run are appended as JSON to the list
// "importkit:failures:<run id>", which expires after the configured TTL
// (one week by default).
//
//	var cfg redisstore.Config
//	config.MustLoad(&cfg)
//
//	client, err := redisstore.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redisstore.New(client, redisstore.WithConfig(cfg))
package redisstore
