package cache

// Config holds configuration for the master data cache.
type Config struct {
	// TTLSeconds is how long cached entries stay fresh. Zero disables caching.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"300"`
}
