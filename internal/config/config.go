// internal/config/config.go
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
	Environment  string
	Server       ServerConfig
	Upstream     UpstreamConfig
	Admin        AdminConfig
	JWT          JWTConfig
	Log          LogConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	I18n         I18nConfig
	Housekeeping HousekeepingConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type UpstreamConfig struct {
	BaseURL string
	Timeout int // in seconds
}

type AdminConfig struct {
	Email        string
	Password     string
	PasswordHash string
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL int // in hours
}

type LogConfig struct {
	Level      string
	Format     string // text or json
	Output     string // stdout, file or both
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

type I18nConfig struct {
	DefaultLocale string
	SortLocale    string
}

type HousekeepingConfig struct {
	Schedule      string
	WorkspaceIdle int // in minutes
}

const defaultJWTSecret = "change-me-admin-console-secret"

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "https://proglide-backend.vercel.app"), "/"),
			Timeout: getEnvAsInt("UPSTREAM_TIMEOUT", 10),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET", defaultJWTSecret),
			SessionTTL: getEnvAsInt("SESSION_TTL", 12), // 12 hours
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "text"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			File:       getEnv("LOG_FILE", "./logs/admin-console.log"),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 64),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 7),
			Compress:   getEnvAsBool("LOG_COMPRESS", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 5),
			LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			SortLocale:    getEnv("SORT_LOCALE", "en"),
		},
		Housekeeping: HousekeepingConfig{
			Schedule:      getEnv("HOUSEKEEPING_SCHEDULE", "@every 5m"),
			WorkspaceIdle: getEnvAsInt("WORKSPACE_IDLE_MINUTES", 60),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	if c.JWT.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.JWT.SessionTTL) * time.Hour
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
