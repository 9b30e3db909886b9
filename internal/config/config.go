// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fintrack/pkg/db" // Import db package for its Config struct
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// AMQPConfig configures the transaction event publisher.
type AMQPConfig struct {
	URL      string // events are disabled when empty
	Exchange string
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string
	StorageBackend string
	DB             db.Config
	SQLitePath     string
	MigrateOnStart bool
	AMQP           AMQPConfig
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadConfig loads configuration from the environment, after reading an optional .env file.
// It returns an error if any variable is malformed or the result fails validation.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load() // a missing .env file is fine

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	migrateOnStart, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}
	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &AppConfig{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "financedb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SQLitePath:     getEnv("SQLITE_DB_PATH", "./data/transactions.db"),
		MigrateOnStart: migrateOnStart,
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getEnv("AMQP_EXCHANGE", "transactions"),
		},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: requestTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *AppConfig) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.ServerPort))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StorageBackend {
	case BackendMemory, BackendPostgres:
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid storage backend '%s': must be one of %v",
			c.StorageBackend, []string{BackendMemory, BackendPostgres, BackendSQLite}))
	}

	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQP.Exchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid request timeout %v: must be positive", c.RequestTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
