package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"starcrystal-economy-go/internal/models"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

func Load() (*models.Config, error) {
	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	sweepInterval, err := getEnvDuration("SWEEP_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	backend := getEnvString("STORE_BACKEND", BackendFile)
	if backend != BackendFile && backend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORE_BACKEND: %q (expected %q or %q)", backend, BackendFile, BackendSQLite)
	}

	return &models.Config{
		Store: models.StoreConfig{
			Backend:      backend,
			DataDir:      getEnvString("DATA_DIR", "data"),
			DatabasePath: getEnvString("DATABASE_PATH", "economy.db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			PingTimeout:  pingTimeout,
		},
		Server: models.ServerConfig{
			EconomyFile:     getEnvString("ECONOMY_FILE", "economy.yaml"),
			SweepInterval:   sweepInterval,
			ShutdownTimeout: shutdownTimeout,
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
