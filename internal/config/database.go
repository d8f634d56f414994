package config

import (
	"fmt"
	"strconv"
	"time"

	"book-catalog/internal/infrastructure/database"
)

// LoadDatabaseConfig reads DB_* variables; malformed numbers and durations are errors
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var errs []error
	intVar := func(key, def string) int {
		v, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	durationVar := func(key, def string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     intVar("DB_PORT", "5432"),
		Username: getEnv("DB_USER", "catalog"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "book_catalog"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(intVar("DB_MAX_CONNECTIONS", "25")),
		MinConns:          int32(intVar("DB_MIN_CONNECTIONS", "5")),
		MaxConnLifetime:   durationVar("DB_MAX_CONN_LIFETIME", "5m"),
		MaxConnIdleTime:   durationVar("DB_MAX_CONN_IDLE_TIME", "1m"),
		HealthCheckPeriod: durationVar("DB_HEALTH_CHECK_PERIOD", "1m"),

		MaxRetries:     intVar("DB_MAX_RETRIES", "5"),
		RetryDelay:     durationVar("DB_RETRY_DELAY", "1s"),
		ConnectTimeout: durationVar("DB_CONNECT_TIMEOUT", "10s"),
	}

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return cfg, nil
}
