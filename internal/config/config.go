package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all server settings, populated from environment variables.
// cmd/api loads a .env file first, so local development only needs that file.
type Config struct {
	Addr string

	FirebaseProjectID          string
	FirebaseServiceAccountPath string
	// FirebaseWebAPIKey is the Web API key used for the Identity Toolkit
	// signInWithPassword call; the Admin SDK cannot perform password sign-in.
	FirebaseWebAPIKey string
	StorageBucket     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	MaxImageWidth      int
	CalendarCacheTTL   time.Duration
	SessionIdleTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults for
// everything that has a sensible one. Firebase settings have no defaults and
// are validated by the Firebase client at startup instead.
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	maxWidth, err := strconv.Atoi(getEnvOrDefault("MAX_IMAGE_WIDTH", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_IMAGE_WIDTH value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnvOrDefault("CALENDAR_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_CACHE_TTL value: %w", err)
	}

	idleTimeout, err := time.ParseDuration(getEnvOrDefault("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT value: %w", err)
	}

	return &Config{
		Addr:                       getEnvOrDefault("ADDR", ":9091"),
		FirebaseProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		FirebaseWebAPIKey:          os.Getenv("FIREBASE_WEB_API_KEY"),
		StorageBucket:              os.Getenv("FIREBASE_STORAGE_BUCKET"),
		RedisHost:                  getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:                  getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                    redisDB,
		MaxImageWidth:              maxWidth,
		CalendarCacheTTL:           cacheTTL,
		SessionIdleTimeout:         idleTimeout,
	}, nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
