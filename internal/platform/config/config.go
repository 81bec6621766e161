package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	Environment           string
	BonusRatePercent      float64
	RunMigrations         bool
	MigrationsDir         string
	RunSeed               bool
	MaxBodyBytes          int64
	RateLimitPerMinute    int
	CORSAllowedOrigins    []string
	BranchRefreshInterval time.Duration
	MetricsEnabled        bool
}

func Load() Config {
	// Missing .env is fine; deployments set real env vars.
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		Environment:           getEnv("APP_ENV", "development"),
		BonusRatePercent:      getEnvFloat("BONUS_RATE_PERCENT", 16.66),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		RunSeed:               getEnvBool("RUN_SEED", true),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CORSAllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
		BranchRefreshInterval: getEnvDuration("BRANCH_REFRESH_INTERVAL", 15*time.Minute),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.BonusRatePercent < 0 || c.BonusRatePercent > 100 {
		return fmt.Errorf("BONUS_RATE_PERCENT must be between 0 and 100")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
