package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	MinIO    MinIOConfig
	Policy   PolicyConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PolicyConfig holds circulation policy knobs. Defaults match the library's
// standing rules: 3 concurrent borrows, $5/day fine capped at $50.
type PolicyConfig struct {
	BorrowLimit     int
	BorrowDays      int // loan period in days
	FinePerDay      int
	FineCap         int
	ReservationDays int // days until an unfulfilled reservation expires
}

// JobConfig holds tunables for scheduled background jobs.
type JobConfig struct {
	OverdueScanBatchSize      int
	NotificationRetentionDays int
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "library-covers"),
			UseSSL:    false,
		},
		Policy: PolicyConfig{
			BorrowLimit:     getEnvInt("POLICY_BORROW_LIMIT", 3),
			BorrowDays:      getEnvInt("POLICY_BORROW_DAYS", 14),
			FinePerDay:      getEnvInt("POLICY_FINE_PER_DAY", 5),
			FineCap:         getEnvInt("POLICY_FINE_CAP", 50),
			ReservationDays: getEnvInt("POLICY_RESERVATION_DAYS", 7),
		},
		Jobs: JobConfig{
			OverdueScanBatchSize:      getEnvInt("JOB_OVERDUE_BATCH_SIZE", 500),
			NotificationRetentionDays: getEnvInt("JOB_NOTIFICATION_RETENTION_DAYS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that critical config is usable
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Policy.BorrowLimit <= 0 {
		return fmt.Errorf("POLICY_BORROW_LIMIT must be positive")
	}
	if c.Policy.BorrowDays <= 0 {
		return fmt.Errorf("POLICY_BORROW_DAYS must be positive")
	}
	if c.Policy.FinePerDay < 0 || c.Policy.FineCap < 0 {
		return fmt.Errorf("fine policy values must be non-negative")
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
