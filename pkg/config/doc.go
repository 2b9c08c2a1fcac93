// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result per type, so every package can call it for its own
//     Config struct without re-parsing.
//   - The default `.env` file is loaded once on first use; LoadEnv loads one or
//     more explicit files.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache and ForceReloadConfig are meant for tests.
//
// Every backend in importkit declares its settings this way, e.g. the importer
// chunk size:
//
//	var cfg importer.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`  failed to parse env vars into struct.
//   - `ErrLoadingEnvFile` a .env file could not be read.
//   - `ErrNilPointer`     nil pointer passed to Load or MustLoad.
package config
