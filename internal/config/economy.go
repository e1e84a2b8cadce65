package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"starcrystal-economy-go/internal/models"
)

// DefaultEconomyConfig returns the configuration written on first setup:
// the original server defaults for drops, rewards and the starter shop.
func DefaultEconomyConfig() *models.EconomyConfig {
	return &models.EconomyConfig{
		Enabled:             true,
		GiveStartingBalance: true,
		StartingCrystals:    100,
		DailyReward: models.RewardTable{
			Low:     10,
			Medium:  5,
			High:    2,
			Supreme: 1,
		},
		DropChances: models.DropTable{
			Low:     0.3,
			Medium:  0.15,
			High:    0.05,
			Supreme: 0.01,
		},
		ShopItems: []models.ShopEntry{
			{ItemId: 1, Stock: models.UnboundedSentinel, PriceTier: models.TierLow, PriceAmount: 10, PurchaseLimit: models.UnboundedSentinel},
			{ItemId: 2, Stock: models.UnboundedSentinel, PriceTier: models.TierLow, PriceAmount: 5, PurchaseLimit: models.UnboundedSentinel},
			{ItemId: 3, Stock: models.UnboundedSentinel, PriceTier: models.TierMedium, PriceAmount: 3, PurchaseLimit: models.UnboundedSentinel},
			{ItemId: 4, Stock: 10, PriceTier: models.TierHigh, PriceAmount: 1, PurchaseLimit: 1},
		},
	}
}

// LoadEconomyConfig reads and validates economy.yaml.
func LoadEconomyConfig(economyFile string) (*models.EconomyConfig, error) {
	var economyPath string
	if filepath.IsAbs(economyFile) {
		economyPath = economyFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		economyPath = filepath.Join(wd, economyFile)
	}

	data, err := os.ReadFile(economyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", economyFile, err)
	}

	var cfg models.EconomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", economyFile, err)
	}

	if cfg.StartingCrystals < 0 {
		return nil, fmt.Errorf("starting_crystals cannot be negative, got %d", cfg.StartingCrystals)
	}
	for i, entry := range cfg.ShopItems {
		if entry.PriceAmount < 1 {
			return nil, fmt.Errorf("shop item at index %d has non-positive price %d", i, entry.PriceAmount)
		}
		if !entry.PriceTier.Valid() {
			return nil, fmt.Errorf("shop item at index %d has unknown price tier %d", i, entry.PriceTier)
		}
		if entry.Stock < models.UnboundedSentinel {
			return nil, fmt.Errorf("shop item at index %d has invalid stock %d", i, entry.Stock)
		}
		if entry.PurchaseLimit < models.UnboundedSentinel || entry.PurchaseLimit == 0 {
			return nil, fmt.Errorf("shop item at index %d has invalid purchase limit %d", i, entry.PurchaseLimit)
		}
	}

	return &cfg, nil
}

// WriteEconomyConfig writes cfg to the given path, used by setup to seed a
// default file.
func WriteEconomyConfig(economyFile string, cfg *models.EconomyConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to encode economy config: %w", err)
	}
	if err := os.WriteFile(economyFile, data, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", economyFile, err)
	}
	return nil
}
