package searchinfra

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the Elasticsearch index adapter.
type Config struct {
	// Addresses lists the Elasticsearch node URLs. Must not be empty.
	Addresses []string

	// Index is the name of the index holding item documents.
	// Must not be empty.
	Index string

	// Timeout bounds every request. Must be greater than 0.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Addresses: []string{"http://localhost:9200"},
		Index:     "todos",
		Timeout:   5 * time.Second,
	}
}

// FromEnv builds a Config from ELASTICSEARCH_HOST, ELASTICSEARCH_PORT
// and ELASTICSEARCH_INDEX, falling back to the defaults when unset.
func FromEnv() Config {
	cfg := DefaultConfig()
	host := "localhost"
	port := "9200"
	if v := os.Getenv("ELASTICSEARCH_HOST"); v != "" {
		host = v
	}
	if v := os.Getenv("ELASTICSEARCH_PORT"); v != "" {
		port = v
	}
	cfg.Addresses = []string{fmt.Sprintf("http://%s:%s", host, port)}
	if v := os.Getenv("ELASTICSEARCH_INDEX"); v != "" {
		cfg.Index = v
	}
	return cfg
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if len(c.Addresses) == 0 {
		return &ConfigError{Field: "Addresses", Message: "must not be empty"}
	}
	for _, addr := range c.Addresses {
		if addr == "" {
			return &ConfigError{Field: "Addresses", Message: "must not contain empty entries"}
		}
	}
	if c.Index == "" {
		return &ConfigError{Field: "Index", Message: "must not be empty"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "Timeout", Message: "must be greater than 0"}
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
