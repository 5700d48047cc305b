package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	SiteName  string
	BaseURL   string
	JWTSecret string

	Catalog CatalogConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	GA4     GA4Config
	Admin   AdminConfig
	Worker  WorkerConfig
	CORS    CORSConfig
}

// CatalogConfig contains feed and page rendering parameters.
type CatalogConfig struct {
	// FeedSources lists candidate feed locations (file paths or http(s)
	// URLs) tried in order until one loads.
	FeedSources      []string
	PageSize         int
	CountdownSeconds int
}

// DatabaseConfig contains PostgreSQL connection parameters.
// An empty Host disables the first-party event store.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
// An empty Host disables the pending-event queue.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// GA4Config contains Google Analytics 4 measurement protocol credentials.
// Empty values disable the GA4 sink.
type GA4Config struct {
	MeasurementID string
	APISecret     string
}

// AdminConfig contains credentials for the admin surface. The password is
// stored as a bcrypt hash; empty values disable admin routes entirely.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	FlushInterval  time.Duration
	FlushBatchSize int
}

// CORSConfig lists hosts allowed to call the JSON endpoints cross-origin.
type CORSConfig struct {
	AllowedHosts []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.SiteName = getEnv("SITE_NAME", "AchouMais")
	cfg.BaseURL = strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:8080"), "/")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Catalog
	cfg.Catalog = CatalogConfig{
		FeedSources:      splitList(getEnv("FEED_SOURCES", "./assets/data/produtos.json")),
		PageSize:         getEnvInt("PAGE_SIZE", 20),
		CountdownSeconds: getEnvInt("COUNTDOWN_SECONDS", 5),
	}

	// Database (optional)
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis (optional)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// GA4 measurement protocol (optional)
	cfg.GA4 = GA4Config{
		MeasurementID: getEnv("GA4_MEASUREMENT_ID", ""),
		APISecret:     getEnv("GA4_API_SECRET", ""),
	}

	// Admin surface (optional)
	cfg.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// CORS
	cfg.CORS = CORSConfig{
		AllowedHosts: splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000")),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.FlushInterval, err = parseDurationEnv("FLUSH_INTERVAL", "5s"); err != nil {
		return nil, err
	}
	cfg.Worker.FlushBatchSize = getEnvInt("FLUSH_BATCH_SIZE", 100)

	if len(cfg.Catalog.FeedSources) == 0 {
		return nil, errors.New("FEED_SOURCES must list at least one feed location")
	}
	if cfg.Catalog.PageSize <= 0 {
		return nil, errors.New("PAGE_SIZE must be positive")
	}

	// Admin surface needs a signing secret; refuse half-configured setups.
	if cfg.AdminEnabled() && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set when ADMIN_EMAIL is configured")
	}

	return cfg, nil
}

// AdminEnabled reports whether the admin routes should be registered.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Email != "" && c.Admin.PasswordHash != ""
}

// DBEnabled reports whether the first-party event store is configured.
func (c *Config) DBEnabled() bool {
	return c.DB.Host != "" && c.DB.User != "" && c.DB.Name != ""
}

// RedisEnabled reports whether the pending-event queue is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// GA4Enabled reports whether the GA4 sink is configured.
func (c *Config) GA4Enabled() bool {
	return c.GA4.MeasurementID != "" && c.GA4.APISecret != ""
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// splitList splits a comma-separated environment value, trimming blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
