package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Login    LoginConfig
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MigrationsPath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name        string
	Version     string
	Port        int
	Env         string
	Timezone    string
	FrontendURL string
}

// LoginConfig bounds login attempts per client IP.
type LoginConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	} else if err != nil {
		slog.Info("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           dbPort,
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", "salon"),
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
		MaxConns:       int32(dbMaxConns),
		MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:        getEnv("APP_NAME", "salon-backend"),
		Version:     getEnv("APP_VERSION", "v1.0.0"),
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		Timezone:    getEnv("APP_TIMEZONE", "Europe/Istanbul"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Login rate limiting
	rps, err := strconv.ParseFloat(getEnv("LOGIN_RATE_LIMIT_RPS", "0.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT_BURST: %w", err)
	}
	config.Login = LoginConfig{RateLimitRPS: rps, RateLimitBurst: burst}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Login.RateLimitRPS <= 0 || c.Login.RateLimitBurst < 1 {
		return fmt.Errorf("LOGIN_RATE_LIMIT_RPS and LOGIN_RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Location is the business timezone every calendar computation uses.
func (c *Config) Location() (*time.Location, error) {
	return timeutil.LoadLocation(c.App.Timezone)
}

// IsProduction enables secure cookies.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
