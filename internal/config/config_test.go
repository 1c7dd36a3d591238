package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "shulebase" {
		t.Errorf("Database.DBName = %q, want shulebase", cfg.Database.DBName)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Payments.Enabled {
		t.Error("payments must default to disabled")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("PAYMENTS_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.Type != "redis" {
		t.Errorf("Cache.Type = %q, want redis", cfg.Cache.Type)
	}
	if cfg.Payments.Timeout != 5*time.Second {
		t.Errorf("Payments.Timeout = %s, want 5s", cfg.Payments.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.CORS.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{DBName: "db"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Cache:    CacheConfig{Enabled: true, Type: "memory"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg := base()
	cfg.Auth.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing JWT secret must be rejected")
	}

	cfg = base()
	cfg.Cache.Type = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown cache type must be rejected")
	}

	cfg = base()
	cfg.Payments.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("enabled payments without credentials must be rejected")
	}
}
