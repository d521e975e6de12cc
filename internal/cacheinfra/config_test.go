package cacheinfra

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"default is valid", func(c *Config) {}, ""},
		{"empty addr", func(c *Config) { c.Addr = "" }, "Addr"},
		{"negative db", func(c *Config) { c.DB = -1 }, "DB"},
		{"zero dial timeout", func(c *Config) { c.DialTimeout = 0 }, "DialTimeout"},
		{"zero op timeout", func(c *Config) { c.OpTimeout = 0 }, "OpTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.wantField {
				t.Errorf("expected ConfigError for %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		t.Setenv("REDIS_HOST", "")
		t.Setenv("REDIS_PORT", "")
		cfg := FromEnv()
		if cfg.Addr != "redis:6379" {
			t.Errorf("Addr = %s, want redis:6379", cfg.Addr)
		}
	})

	t.Run("host and port from environment", func(t *testing.T) {
		t.Setenv("REDIS_HOST", "cache.internal")
		t.Setenv("REDIS_PORT", "6380")
		cfg := FromEnv()
		if cfg.Addr != "cache.internal:6380" {
			t.Errorf("Addr = %s, want cache.internal:6380", cfg.Addr)
		}
		if cfg.DialTimeout != 2*time.Second {
			t.Errorf("DialTimeout should keep its default, got %v", cfg.DialTimeout)
		}
	})
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:1" // nothing listens here
	cfg.DialTimeout = 100 * time.Millisecond

	if _, err := NewRedisCache(cfg, nil); err == nil {
		t.Fatal("expected the connectivity probe to fail")
	}
}

func TestNewRedisCacheInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = ""

	var cfgErr *ConfigError
	if _, err := NewRedisCache(cfg, nil); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
