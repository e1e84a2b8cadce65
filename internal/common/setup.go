package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"starcrystal-economy-go/internal/config"
	"starcrystal-economy-go/internal/database"
	"starcrystal-economy-go/internal/economy"
	"starcrystal-economy-go/internal/filestore"
	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("Loaded environment variables from .env file")
	}
}

// Services bundles everything a command needs once bootstrapped.
type Services struct {
	Store   store.Store
	Economy *economy.Service
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeStore opens the configured snapshot backend.
func InitializeStore(ctx context.Context, cfg *models.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return database.NewService(ctx, cfg.Store)
	case config.BackendFile:
		return filestore.NewService(cfg.Store.DataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// InitializeServices opens the store, builds the economy service over it and
// restores all aggregates.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	economyCfg, err := config.LoadEconomyConfig(cfg.Server.EconomyFile)
	if err != nil {
		return nil, err
	}

	backend, err := InitializeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	service := economy.NewService(backend, economyCfg)
	if err := service.LoadAll(ctx); err != nil {
		backend.Close()
		return nil, err
	}

	zap.L().Info("Economy services initialized",
		zap.String("backend", cfg.Store.Backend),
		zap.Bool("enabled", service.IsEnabled()))

	return &Services{Store: backend, Economy: service}, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
