package config

import (
	"errors"
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

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfig checks the configuration for the current environment and
// reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []error
	add := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message})
	}

	if cfg.ServerPort == "" {
		add("server_port", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("db_host", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("db_name", "is required for postgres")
		}
		if cfg.Environment == Production && cfg.DBPassword == "" {
			add("db_password", "db_password secret is required in production")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("sqlite_path", "is required for sqlite")
		}
		if cfg.Environment == Production {
			add("db_driver", "sqlite is not supported in production")
		}
	default:
		add("db_driver", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.RedisURL != "" {
		if cfg.RateLimitRequests <= 0 {
			add("rate_limit_requests", "must be greater than zero")
		}
		if cfg.RateLimitWindow <= 0 {
			add("rate_limit_window", "must be greater than zero")
		}
	}

	if cfg.Environment == CI && cfg.JWTSecret == "" {
		add("jwt_secret", "JWT_SECRET environment variable is required in CI environment")
	}
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 && cfg.Environment == Production {
		add("jwt_secret", "must be at least 16 characters in production")
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		add("log_level", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		add("log_format", "must be json or text")
	}

	if cfg.MaxPageSize <= 0 {
		add("max_page_size", "must be greater than zero")
	}

	if cfg.S3Bucket != "" && cfg.S3Region == "" {
		add("s3_region", "is required when s3_bucket is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}
