// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string

	// APIKey guards mutating endpoints. Empty disables authentication,
	// which is only appropriate for local development.
	APIKey string

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// MarketCatalogPath points at a TOML catalog overriding the embedded
	// default market list. Empty means use the embedded catalog.
	MarketCatalogPath string

	// Oracle endpoints. Empty base URLs fall back to each client's default.
	CoinGeckoBaseURL   string
	StockQuoteBaseURL  string
	StockQuoteAPIKey   string
	MetricsBaseURL     string
	DexScreenerBaseURL string

	// RedisAddr enables the shared oracle price cache when set
	RedisAddr     string
	RedisPassword string

	// DeadLetterPath is where undeliverable events are appended
	DeadLetterPath string

	WorkerCount     int
	WorkerQueueSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		APIKey:             getEnv("API_KEY", ""),
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "pricetide"),
		MarketCatalogPath:  getEnv("MARKET_CATALOG_PATH", ""),
		CoinGeckoBaseURL:   getEnv("COINGECKO_BASE_URL", ""),
		StockQuoteBaseURL:  getEnv("STOCK_QUOTE_BASE_URL", ""),
		StockQuoteAPIKey:   getEnv("STOCK_QUOTE_API_KEY", ""),
		MetricsBaseURL:     getEnv("ONCHAIN_METRICS_BASE_URL", ""),
		DexScreenerBaseURL: getEnv("DEXSCREENER_BASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		DeadLetterPath:     getEnv("DEAD_LETTER_PATH", "events.deadletter"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", DefaultWorkerCount); err != nil {
		return nil, err
	}
	if cfg.WorkerQueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated environment value into a slice
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
