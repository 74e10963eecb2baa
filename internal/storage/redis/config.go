package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// KeyPrefix namespaces every key written by the store
	KeyPrefix string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TableTTL is refreshed on every save. Zero, the default, disables
	// expiry: a table only ends when its gamemaster leaves. A non-zero value
	// evicts tables idle for that long without notifying anyone.
	TableTTL time.Duration

	// ResetOnOpen clears the key namespace when the store is opened, so a
	// restarted server never resumes tables whose sessions are gone.
	ResetOnOpen bool
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "fatetable",
		PoolSize:     10,
		MinIdleConns: 2,
		TableTTL:     0,
		ResetOnOpen:  true,
	}
}
