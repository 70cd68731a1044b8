package snapshot

// Config holds configuration for the snapshot store.
type Config struct {
	// Backend selects the store (database, object, redis, memory).
	Backend string `mapstructure:"backend" default:"database"`
	// Prefix namespaces object keys and Redis keys.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
}

const (
	BackendDatabase = "database"
	BackendObject   = "object"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)
