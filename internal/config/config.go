package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	AuthService AuthServiceConfig
	Session     SessionConfig
	Listing     ListingConfig
	S3          S3Config
	Seed        SeedConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the API key guarding the admin routes.
type AuthConfig struct {
	APIKey string
}

// AuthServiceConfig points at the external authentication service.
type AuthServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls the in-memory session store and map editing sessions.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MapEditTTL    time.Duration
}

// ListingConfig holds the fixed page size of each list view.
type ListingConfig struct {
	CatalogPageSize     int
	GuidePageSize       int
	OpportunityPageSize int
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "seed/")
}

// SeedConfig lists the reference data files loaded by the seed command.
type SeedConfig struct {
	Files []string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "daurulang"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		AuthService: AuthServiceConfig{
			BaseURL: strings.TrimRight(getEnv("AUTH_SERVICE_URL", "http://localhost:9000"), "/"),
			Timeout: getEnvAsDuration("AUTH_SERVICE_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
			MapEditTTL:    getEnvAsDuration("MAP_EDIT_SESSION_TTL", 30*time.Minute),
		},
		Listing: ListingConfig{
			CatalogPageSize:     getEnvAsInt("CATALOG_PAGE_SIZE", 12),
			GuidePageSize:       getEnvAsInt("GUIDE_PAGE_SIZE", 8),
			OpportunityPageSize: getEnvAsInt("OPPORTUNITY_PAGE_SIZE", 6),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "ap-southeast-1"),
			Prefix:  getEnv("S3_PREFIX", "seed/"),
		},
		Seed: SeedConfig{
			Files: getEnvAsList("SEED_FILES", []string{
				"data/seed/catalog.jsonl.gz",
				"data/seed/opportunities.jsonl.gz",
				"data/seed/tutorials.jsonl.gz",
				"data/seed/buyers.yaml",
			}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem found, not
// just the first.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(validPort(c.Server.Port), "invalid server port: %d", c.Server.Port)

	db := c.Database
	check(db.Host != "", "database host is required")
	check(validPort(db.Port), "invalid database port: %d", db.Port)
	check(db.User != "", "database user is required")
	check(db.Database != "", "database name is required")
	check(db.MaxConnections >= 1, "database max connections must be at least 1")
	check(db.MinConnections >= 1, "database min connections must be at least 1")
	check(db.MinConnections <= db.MaxConnections, "database min connections cannot exceed max connections")

	check(c.Auth.APIKey != "", "API key is required")
	check(c.AuthService.BaseURL != "", "auth service URL is required")
	check(c.AuthService.Timeout > 0, "auth service timeout must be positive")
	check(c.Session.TTL > 0, "session TTL must be positive")
	check(c.Session.SweepInterval > 0, "session sweep interval must be positive")
	check(c.Session.MapEditTTL > 0, "map edit session TTL must be positive")

	l := c.Listing
	check(l.CatalogPageSize >= 1 && l.GuidePageSize >= 1 && l.OpportunityPageSize >= 1, "page sizes must be at least 1")

	check(validLogLevels[c.Logger.Level], "invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	check(c.Logger.Format == "json" || c.Logger.Format == "console", "invalid log format: %s (must be json or console)", c.Logger.Format)

	if c.S3.Enabled {
		check(c.S3.Bucket != "", "S3 bucket is required when S3 is enabled")
		check(c.S3.Region != "", "S3 region is required when S3 is enabled")
	}

	return errors.Join(errs...)
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validPort(p int) bool {
	return p >= 1 && p <= 65535
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration parses values such as "30s" or "24h".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
