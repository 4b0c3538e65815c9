package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	// Catalog API
	CatalogClientID     string
	CatalogClientSecret string
	CatalogBaseURL      string
	CatalogAuthURL      string
	CatalogTimeout      time.Duration
	DefaultMarket       string

	HTTPPort string

	// Redis配置
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration // 0 disables the track cache

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment without touching .env.
func FromEnv() *Config {
	return &Config{
		CatalogClientID:     os.Getenv("CATALOG_CLIENT_ID"),
		CatalogClientSecret: os.Getenv("CATALOG_CLIENT_SECRET"), // no default for secrets
		CatalogBaseURL:      getEnv("CATALOG_BASE_URL", "https://api.spotify.com/v1"),
		CatalogAuthURL:      getEnv("CATALOG_AUTH_URL", "https://accounts.spotify.com/api/token"),
		CatalogTimeout:      time.Duration(getEnvInt("CATALOG_TIMEOUT_SECONDS", 10)) * time.Second,
		DefaultMarket:       getEnv("CATALOG_DEFAULT_MARKET", "US"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		RedisHost:           getEnv("REDIS_HOST", ""),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		CacheTTL:            time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             getEnv("LOG_FILE", ""),
	}
}

// HasCredentials reports whether both catalog credentials are present.
func (c *Config) HasCredentials() bool {
	return c.CatalogClientID != "" && c.CatalogClientSecret != ""
}

// RedisEnabled reports whether a Redis host is configured and caching is on.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != "" && c.CacheTTL > 0
}
