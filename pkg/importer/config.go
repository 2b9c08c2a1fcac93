package importer

// Config holds the env configuration of an import run.
type Config struct {
	ChunkSize   int `env:"IMPORT_CHUNK_SIZE" envDefault:"500"`
	MaxFailures int `env:"IMPORT_MAX_FAILURES" envDefault:"0"`
}
