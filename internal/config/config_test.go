package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_BACKEND", "DATA_DIR", "DATABASE_PATH",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_PING_TIMEOUT",
		"ECONOMY_FILE", "SWEEP_INTERVAL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Store.Backend != BackendFile {
		t.Errorf("Expected file backend by default, got %q", cfg.Store.Backend)
	}
	if cfg.Store.DataDir != "data" {
		t.Errorf("Unexpected data dir: %q", cfg.Store.DataDir)
	}
	if cfg.Store.MaxOpenConns != 25 || cfg.Store.MaxIdleConns != 5 {
		t.Errorf("Unexpected connection limits: %d/%d", cfg.Store.MaxOpenConns, cfg.Store.MaxIdleConns)
	}
	if cfg.Server.SweepInterval != 10*time.Minute {
		t.Errorf("Unexpected sweep interval: %v", cfg.Server.SweepInterval)
	}
	if cfg.Server.EconomyFile != "economy.yaml" {
		t.Errorf("Unexpected economy file: %q", cfg.Server.EconomyFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", BackendSQLite)
	t.Setenv("DATABASE_PATH", "/tmp/economy.db")
	t.Setenv("SWEEP_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Expected sqlite backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.DatabasePath != "/tmp/economy.db" {
		t.Errorf("Unexpected database path: %q", cfg.Store.DatabasePath)
	}
	if cfg.Server.SweepInterval != 30*time.Second {
		t.Errorf("Unexpected sweep interval: %v", cfg.Server.SweepInterval)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SWEEP_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unparseable duration")
	}
}
