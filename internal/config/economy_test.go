package config

import (
	"os"
	"path/filepath"
	"testing"

	"starcrystal-economy-go/internal/models"
)

func writeEconomyFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "economy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write economy file: %v", err)
	}
	return path
}

func TestDefaultEconomyConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.yaml")

	if err := WriteEconomyConfig(path, DefaultEconomyConfig()); err != nil {
		t.Fatalf("WriteEconomyConfig failed: %v", err)
	}

	cfg, err := LoadEconomyConfig(path)
	if err != nil {
		t.Fatalf("LoadEconomyConfig failed: %v", err)
	}

	if !cfg.Enabled || !cfg.GiveStartingBalance {
		t.Error("Default flags changed after round trip")
	}
	if cfg.StartingCrystals != 100 {
		t.Errorf("Unexpected starting crystals: %d", cfg.StartingCrystals)
	}
	if cfg.DailyReward.Low != 10 || cfg.DailyReward.Supreme != 1 {
		t.Errorf("Unexpected daily rewards: %+v", cfg.DailyReward)
	}
	if cfg.DropChances.Low != 0.3 || cfg.DropChances.Supreme != 0.01 {
		t.Errorf("Unexpected drop chances: %+v", cfg.DropChances)
	}
	if len(cfg.ShopItems) != 4 {
		t.Fatalf("Expected 4 default shop items, got %d", len(cfg.ShopItems))
	}
	if cfg.ShopItems[3].Stock != 10 || cfg.ShopItems[3].PurchaseLimit != 1 {
		t.Errorf("Limited shop item changed: %+v", cfg.ShopItems[3])
	}
}

func TestLoadEconomyConfigMissingFile(t *testing.T) {
	if _, err := LoadEconomyConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadEconomyConfigRejectsInvalidYAML(t *testing.T) {
	path := writeEconomyFile(t, "enabled: [broken")
	if _, err := LoadEconomyConfig(path); err == nil {
		t.Error("Expected error for invalid yaml")
	}
}

func TestLoadEconomyConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"negative starting crystals",
			"starting_crystals: -1\n",
		},
		{
			"zero price",
			"shop_items:\n- item_id: 1\n  stock: -1\n  price_tier: 0\n  price_amount: 0\n  purchase_limit: -1\n",
		},
		{
			"unknown price tier",
			"shop_items:\n- item_id: 1\n  stock: -1\n  price_tier: 9\n  price_amount: 1\n  purchase_limit: -1\n",
		},
		{
			"stock below sentinel",
			"shop_items:\n- item_id: 1\n  stock: -2\n  price_tier: 0\n  price_amount: 1\n  purchase_limit: -1\n",
		},
		{
			"zero purchase limit",
			"shop_items:\n- item_id: 1\n  stock: -1\n  price_tier: 0\n  price_amount: 1\n  purchase_limit: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEconomyFile(t, tt.content)
			if _, err := LoadEconomyConfig(path); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadEconomyConfigParsesTiers(t *testing.T) {
	path := writeEconomyFile(t, `
enabled: true
give_starting_balance: false
starting_crystals: 50
shop_items:
- item_id: 29
  stock: 5
  price_tier: 2
  price_amount: 3
  purchase_limit: -1
`)

	cfg, err := LoadEconomyConfig(path)
	if err != nil {
		t.Fatalf("LoadEconomyConfig failed: %v", err)
	}
	if cfg.GiveStartingBalance {
		t.Error("Expected starting balance disabled")
	}
	if cfg.ShopItems[0].PriceTier != models.TierHigh {
		t.Errorf("Unexpected price tier: %v", cfg.ShopItems[0].PriceTier)
	}
}
