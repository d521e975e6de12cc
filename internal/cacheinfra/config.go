package cacheinfra

import (
	"net"
	"os"
	"time"
)

// Config holds the configuration for the Redis cache adapter.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password is the optional AUTH password.
	Password string

	// DB selects the Redis logical database. Must be non-negative.
	DB int

	// DialTimeout bounds the connectivity probe performed at
	// construction time. Must be greater than 0.
	DialTimeout time.Duration

	// OpTimeout bounds every individual cache operation.
	// Must be greater than 0.
	OpTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Addr:        "redis:6379",
		DialTimeout: 2 * time.Second,
		OpTimeout:   500 * time.Millisecond,
	}
}

// FromEnv builds a Config from REDIS_HOST and REDIS_PORT, falling back
// to the defaults when unset.
func FromEnv() Config {
	cfg := DefaultConfig()
	host := "redis"
	port := "6379"
	if v := os.Getenv("REDIS_HOST"); v != "" {
		host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		port = v
	}
	cfg.Addr = net.JoinHostPort(host, port)
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Password = v
	}
	return cfg
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Addr == "" {
		return &ConfigError{Field: "Addr", Message: "must not be empty"}
	}
	if c.DB < 0 {
		return &ConfigError{Field: "DB", Message: "must be non-negative"}
	}
	if c.DialTimeout <= 0 {
		return &ConfigError{Field: "DialTimeout", Message: "must be greater than 0"}
	}
	if c.OpTimeout <= 0 {
		return &ConfigError{Field: "OpTimeout", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
