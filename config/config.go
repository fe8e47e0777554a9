package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Classifier configuration (optional; classification degrades to
	// defaults when unset)
	ClassifierAPIKey string
	ClassifierAPIURL string

	// S3 configuration
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secret files for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: envOr("SERVER_PORT", "8080"),
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOrSecret("DB_USER", "db_user"),
		DBPassword: envOrSecret("DB_PASSWORD", "db_password"),
		DBName:     envOr("DB_NAME", "safebite"),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),

		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: envOrSecret("JWT_SECRET", "jwt_secret"),

		ClassifierAPIKey: envOrSecret("CLASSIFIER_API_KEY", "classifier_api_key"),
		ClassifierAPIURL: envOr("CLASSIFIER_API_URL", "https://api.openai.com/v1/chat/completions"),

		S3Bucket:  envOr("S3_BUCKET_NAME", "safebite-item-photos"),
		AWSRegion: envOr("AWS_REGION", "us-east-1"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret reads an environment variable, then the matching Docker secret
// file under SECRETS_DIR (default /run/secrets).
func envOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
