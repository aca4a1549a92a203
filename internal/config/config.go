package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	DatabaseURL string

	RedisURL string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	ResendAPIKey string
	FromEmail    string
	Domain       string

	SearchConsoleURL     string
	SearchConsoleTimeout time.Duration

	PageSpeedURL    string
	PageSpeedAPIKey string

	InsightsURL    string
	InsightsAPIKey string
	InsightsModel  string

	SyncChunkSize  int
	SyncChunkDelay time.Duration
	SyncLockTTL    time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "rankwatch-imports"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		SearchConsoleURL:     getEnv("SEARCH_CONSOLE_URL", "https://searchconsole.googleapis.com/webmasters/v3"),
		SearchConsoleTimeout: getDurationEnv("SEARCH_CONSOLE_TIMEOUT", 30*time.Second),

		PageSpeedURL:    getEnv("PAGESPEED_URL", "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"),
		PageSpeedAPIKey: getEnv("PAGESPEED_API_KEY", ""),

		InsightsURL:    getEnv("INSIGHTS_URL", ""),
		InsightsAPIKey: getEnv("INSIGHTS_API_KEY", ""),
		InsightsModel:  getEnv("INSIGHTS_MODEL", "gpt-4o-mini"),

		SyncChunkSize:  getIntEnv("SYNC_CHUNK_SIZE", 50),
		SyncChunkDelay: getDurationEnv("SYNC_CHUNK_DELAY", 250*time.Millisecond),
		SyncLockTTL:    getDurationEnv("SYNC_LOCK_TTL", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
