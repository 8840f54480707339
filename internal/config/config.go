package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	Admin AdminConfig
	Blog  BlogConfig
	Job   JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// AdminConfig holds the shared key that gates moderation endpoints.
type AdminConfig struct {
	APIKey string
}

// BlogConfig tunes the admission pipeline and retention worker.
type BlogConfig struct {
	// DedupWindow is how long identical content collapses into one
	// submission.
	DedupWindow time.Duration

	// RejectedRetentionDays is how long rejected submissions stay
	// available for audit before the purge job removes them.
	RejectedRetentionDays int
}

// JobConfig tunes the background worker.
type JobConfig struct {
	PurgeRetentionDays int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	dedupWindowMS := getEnvInt("BLOG_DEDUP_WINDOW_MS", 2000)

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "BlogHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", "admin123"),
		},
		Blog: BlogConfig{
			DedupWindow:           time.Duration(dedupWindowMS) * time.Millisecond,
			RejectedRetentionDays: getEnvInt("BLOG_REJECTED_RETENTION_DAYS", 30),
		},
		Job: JobConfig{
			PurgeRetentionDays: getEnvInt("BLOG_REJECTED_RETENTION_DAYS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.APIKey == "admin123" {
			return fmt.Errorf("ADMIN_API_KEY must be set in production")
		}
	}

	if c.Blog.DedupWindow <= 0 {
		return fmt.Errorf("BLOG_DEDUP_WINDOW_MS must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
