package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the values the service cannot run without are
// present. The classifier and S3 settings are intentionally not required:
// both features degrade gracefully when unconfigured.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBUser == "" {
		errors = append(errors, "DB_USER environment variable or db_user secret is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD environment variable or db_password secret is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET environment variable or jwt_secret secret is required")
	}
	if IsProduction() && cfg.RedisPassword == "" {
		errors = append(errors, "REDIS_PASSWORD environment variable or redis_password secret is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
