package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// SSOT: all environment variables are read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	EDGAR EDGARConfig

	// Analysis
	Analysis AnalysisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// EDGARConfig holds SEC EDGAR API configuration. The SEC requires a
// descriptive User-Agent with a contact address and caps automated
// traffic at 10 requests per second.
type EDGARConfig struct {
	BaseURL      string
	TickerIndex  string
	UserAgent    string
	RateLimit    int           // requests per second
	CacheTTL     time.Duration // company-facts cache lifetime
	FetchTimeout time.Duration
}

// AnalysisConfig holds pipeline configuration
type AnalysisConfig struct {
	WindowYears int // trailing fiscal-year window, default 5
}

// Load reads configuration from environment variables
// SSOT: this function is the only caller of os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External APIs
		EDGAR: EDGARConfig{
			BaseURL:      getEnv("EDGAR_BASE_URL", "https://data.sec.gov"),
			TickerIndex:  getEnv("EDGAR_TICKER_INDEX_URL", "https://www.sec.gov/files/company_tickers.json"),
			UserAgent:    getEnv("EDGAR_USER_AGENT", "fintab/1.0 (admin@fintab.dev)"),
			RateLimit:    getEnvAsInt("EDGAR_RATE_LIMIT", 10),
			CacheTTL:     getEnvAsDuration("EDGAR_CACHE_TTL", "6h"),
			FetchTimeout: getEnvAsDuration("EDGAR_FETCH_TIMEOUT", "30s"),
		},

		// Analysis
		Analysis: AnalysisConfig{
			WindowYears: getEnvAsInt("ANALYSIS_WINDOW_YEARS", 5),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.EDGAR.UserAgent == "" {
		return fmt.Errorf("EDGAR_USER_AGENT is required (the SEC rejects requests without one)")
	}

	if c.EDGAR.RateLimit < 1 || c.EDGAR.RateLimit > 10 {
		return fmt.Errorf("EDGAR_RATE_LIMIT must be between 1 and 10 (SEC fair access policy)")
	}

	if c.Analysis.WindowYears < 1 || c.Analysis.WindowYears > 20 {
		return fmt.Errorf("ANALYSIS_WINDOW_YEARS must be between 1 and 20")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
