// Package pgstore stores import failures in PostgreSQL.
//
// Failures live in the import_failures table, created by the migrations embedded
// in this package. Errors and row values are stored as jsonb.
//
//	var cfg pgstore.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pgstore.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	store := pgstore.New(pool)
//
// Environment:
//
//	PG_CONN_URL          connection string (required)
//	PG_MAX_OPEN_CONNS    pool size (default 10)
//	PG_RETRY_ATTEMPTS    connect attempts (default 3)
//	PG_RETRY_INTERVAL    base wait between attempts (default 5s)
//	PG_MIGRATIONS_TABLE  goose version table (default importkit_migrations)
package pgstore
