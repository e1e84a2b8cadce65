package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/common"
	"starcrystal-economy-go/internal/config"
	"starcrystal-economy-go/internal/economy"
)

// seedEconomyFile writes the default economy.yaml unless one already exists.
func seedEconomyFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			zap.L().Info("Economy config already exists, keeping it", zap.String("path", path))
			return nil
		}
	}

	if err := config.WriteEconomyConfig(path, config.DefaultEconomyConfig()); err != nil {
		return err
	}
	zap.L().Info("Wrote default economy config", zap.String("path", path))
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	forceFlag := flag.Bool("force", false, "Overwrite an existing economy config with defaults")
	flag.Parse()

	zap.L().Info("Initializing star crystal economy")

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	if err := seedEconomyFile(cfg.Server.EconomyFile, *forceFlag); err != nil {
		zap.L().Fatal("Failed to seed economy config", zap.Error(err))
	}

	economyCfg, err := config.LoadEconomyConfig(cfg.Server.EconomyFile)
	if err != nil {
		zap.L().Fatal("Failed to load economy config", zap.Error(err))
	}

	backend, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize store", zap.Error(err))
	}
	defer backend.Close()

	service := economy.NewService(backend, economyCfg)
	if err := service.LoadAll(ctx); err != nil {
		zap.L().Fatal("Failed to load existing state", zap.Error(err))
	}
	if err := service.SaveAll(ctx); err != nil {
		zap.L().Fatal("Failed to write initial snapshots", zap.Error(err))
	}

	zap.L().Info("Initialization complete",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("shop_entries", len(service.ShopList())))
}
