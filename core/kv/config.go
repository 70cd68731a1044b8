package kv

import "time"

// Config holds configuration for the Redis connection.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the optional Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis logical database index.
	DB int `mapstructure:"db" default:"0"`
	// TimeoutSeconds bounds dialing and each read/write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}

// Timeout returns the configured timeout, defaulting to five seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
