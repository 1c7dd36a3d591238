package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Payments PaymentsConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	Type    string // redis or memory
	TTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// AuthConfig describes how session tokens from the external auth provider
// are verified. The provider owns sign-up, sign-in, and credential storage;
// this service only checks the tokens it issues.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// PaymentsConfig points at the external payments processor.
type PaymentsConfig struct {
	Enabled       bool
	BaseURL       string
	SecretKey     string
	CallbackToken string
	Timeout       time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getenv("SERVER_HOST", "0.0.0.0"),
			Port:         getenvInt("SERVER_PORT", 8080),
			ReadTimeout:  getenvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getenvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenvInt("DB_PORT", 5432),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			DBName:   getenv("DB_NAME", "shulebase"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
			LogLevel: getenv("DB_LOG_LEVEL", "warn"),
		},
		Redis: RedisConfig{
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenvInt("REDIS_PORT", 6379),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled: getenvBool("CACHE_ENABLED", true),
			Type:    getenv("CACHE_TYPE", "memory"),
			TTL:     getenvDuration("CACHE_TTL", time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getenvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getenvList("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type", "X-School-ID"}),
		},
		Auth: AuthConfig{
			JWTSecret: getenv("AUTH_JWT_SECRET", ""),
			JWTIssuer: getenv("AUTH_JWT_ISSUER", "shulebase-auth"),
		},
		Payments: PaymentsConfig{
			Enabled:       getenvBool("PAYMENTS_ENABLED", false),
			BaseURL:       getenv("PAYMENTS_BASE_URL", ""),
			SecretKey:     getenv("PAYMENTS_SECRET_KEY", ""),
			CallbackToken: getenv("PAYMENTS_CALLBACK_TOKEN", ""),
			Timeout:       getenvDuration("PAYMENTS_TIMEOUT", 10*time.Second),
		},
		Metrics: MetricsConfig{
			Enabled: getenvBool("METRICS_ENABLED", true),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.Cache.Enabled && c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return fmt.Errorf("CACHE_TYPE must be redis or memory, got %q", c.Cache.Type)
	}
	if c.Payments.Enabled {
		if c.Payments.BaseURL == "" || c.Payments.SecretKey == "" {
			return fmt.Errorf("PAYMENTS_BASE_URL and PAYMENTS_SECRET_KEY are required when payments are enabled")
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
