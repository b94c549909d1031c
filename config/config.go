package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the process environment, applying defaults.
func FromEnv() (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}
	getInt := func(key string, fallback int) (int, error) {
		raw := getEnv(key, "")
		if raw == "" {
			return fallback, nil
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return 0, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, raw)
		}
		return value, nil
	}

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", StoreDynamoDB)),
			AWSRegion:   getEnv("AWS_REGION", ""),
			TablePrefix: getEnv("TABLE_PREFIX", ""),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", ""),
	}

	var err error
	if cfg.Scheduling.MinOverlapMinutes, err = getInt("MIN_OVERLAP_MINUTES", 30); err != nil {
		return Config{}, err
	}
	if cfg.NotificationLimit, err = getInt("NOTIFICATION_LIMIT", 30); err != nil {
		return Config{}, err
	}
	if cfg.PushBuffer, err = getInt("PUSH_BUFFER", 16); err != nil {
		return Config{}, err
	}

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	switch cfg.Store.Backend {
	case StoreMemory:
	case StoreDynamoDB:
		if cfg.Store.AWSRegion == "" {
			return Config{}, fmt.Errorf("AWS_REGION is required when STORE_BACKEND is %s", StoreDynamoDB)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	return cfg, nil
}
