package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Parser        ParserConfig
	Dedup         DedupConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
}

type ParserConfig struct {
	MinAmount     int64 // rupees; matches below are junk (OTPs, account digits)
	MaxAmount     int64 // rupees
	MaxEmailBatch int
}

type DedupConfig struct {
	// Granularity is the timestamp rounding window for fingerprints.
	Granularity time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Parser: ParserConfig{
			MinAmount:     int64(getEnvAsInt("PARSER_MIN_AMOUNT", 1)),
			MaxAmount:     int64(getEnvAsInt("PARSER_MAX_AMOUNT", 100_000_000)),
			MaxEmailBatch: getEnvAsInt("PARSER_MAX_EMAIL_BATCH", 500),
		},
		Dedup: DedupConfig{
			Granularity: getEnvAsDuration("DEDUP_GRANULARITY", 24*time.Hour),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "finsift"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if cfg.Parser.MinAmount >= cfg.Parser.MaxAmount {
		return nil, fmt.Errorf("PARSER_MIN_AMOUNT %d must be below PARSER_MAX_AMOUNT %d",
			cfg.Parser.MinAmount, cfg.Parser.MaxAmount)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
