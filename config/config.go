package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`

	// Database configuration
	DBDriver    string `mapstructure:"db_driver"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      string `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name"`
	DBSSLMode   string `mapstructure:"db_ssl_mode"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`

	// Redis backs the rate limiter; an empty URL disables it
	RedisURL          string        `mapstructure:"redis_url"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`

	// JWT secret used to read the caller identity; empty means anonymous requests only
	JWTSecret string `mapstructure:"jwt_secret"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	MaxPageSize int `mapstructure:"max_page_size"`

	// S3 image uploads; an empty bucket disables them
	S3Bucket        string        `mapstructure:"s3_bucket"`
	S3Region        string        `mapstructure:"s3_region"`
	S3Endpoint      string        `mapstructure:"s3_endpoint"`
	S3PublicBaseURL string        `mapstructure:"s3_public_base_url"`
	S3PresignExpiry time.Duration `mapstructure:"s3_presign_expiry"`
}

var defaults = map[string]any{
	"server_host":          "0.0.0.0",
	"server_port":          "8080",
	"db_driver":            "postgres",
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "postgres",
	"db_name":              "recipes",
	"db_ssl_mode":          "disable",
	"sqlite_path":          "recipes.db",
	"auto_migrate":         true,
	"redis_url":            "",
	"rate_limit_window":    time.Minute,
	"rate_limit_requests":  60,
	"jwt_secret":           "",
	"cors_allowed_origins": []string{"http://localhost:5173", "http://frontend:5173"},
	"log_level":            "info",
	"log_format":           "json",
	"max_page_size":        100,
	"s3_bucket":            "",
	"s3_region":            "us-east-1",
	"s3_endpoint":          "",
	"s3_public_base_url":   "",
	"s3_presign_expiry":    15 * time.Minute,
}

// secretKeys are read from Docker secrets files when present
var secretKeys = []string{"db_user", "db_password", "jwt_secret", "redis_url"}

// LoadConfig builds the configuration from defaults, an optional config file
// (CONFIG_FILE), environment variables and Docker secrets, in that order
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if err := readConfigFile(v, file); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	env := GetEnvironment()
	// CI provides everything through environment variables
	if env != CI {
		for _, key := range secretKeys {
			if value := readSecret(key); value != "" {
				v.Set(key, value)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Environment = env

	return cfg, nil
}

func readConfigFile(v *viper.Viper, file string) error {
	v.SetConfigFile(file)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(file), "."))
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	for _, key := range v.AllKeys() {
		if value, ok := v.Get(key).(string); ok && value != "" {
			v.Set(key, expandEnvWithDefaults(value))
		}
	}
	return nil
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults replaces ${VAR} and ${VAR:-default} with the
// environment value or the default
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if value := os.Getenv(groups[1]); value != "" {
			return value
		}
		return groups[2]
	})
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

// DatabaseDSN returns the postgres connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL returns the postgres connection string in URL form
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
