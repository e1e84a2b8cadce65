package models

import "time"

// Config represents the process configuration, loaded from the environment.
type Config struct {
	Store  StoreConfig
	Server ServerConfig
}

// StoreConfig selects and tunes the snapshot backend.
type StoreConfig struct {
	Backend      string // "file" or "sqlite"
	DataDir      string // snapshot directory for the file backend
	DatabasePath string // database file for the sqlite backend
	MaxOpenConns int
	MaxIdleConns int
	PingTimeout  time.Duration
}

// ServerConfig holds daemon settings.
type ServerConfig struct {
	EconomyFile     string // path to economy.yaml
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

// RewardTable is a per-tier crystal amount, used for the daily reward.
type RewardTable struct {
	Low     int64 `yaml:"low"`
	Medium  int64 `yaml:"medium"`
	High    int64 `yaml:"high"`
	Supreme int64 `yaml:"supreme"`
}

// Amount returns the configured amount for a tier.
func (r RewardTable) Amount(t Tier) int64 {
	switch t {
	case TierLow:
		return r.Low
	case TierMedium:
		return r.Medium
	case TierHigh:
		return r.High
	case TierSupreme:
		return r.Supreme
	}
	return 0
}

// DropTable is the per-tier base probability of a crystal drop. Probabilities
// are checked highest tier first, so a single roll yields at most one drop.
type DropTable struct {
	Low     float64 `yaml:"low"`
	Medium  float64 `yaml:"medium"`
	High    float64 `yaml:"high"`
	Supreme float64 `yaml:"supreme"`
}

// Chance returns the configured base probability for a tier.
func (d DropTable) Chance(t Tier) float64 {
	switch t {
	case TierLow:
		return d.Low
	case TierMedium:
		return d.Medium
	case TierHigh:
		return d.High
	case TierSupreme:
		return d.Supreme
	}
	return 0
}

// EconomyConfig is the game-facing configuration read from economy.yaml.
// The engine reads it but does not own it; admins edit the file directly.
type EconomyConfig struct {
	Enabled             bool        `yaml:"enabled"`
	GiveStartingBalance bool        `yaml:"give_starting_balance"`
	StartingCrystals    int64       `yaml:"starting_crystals"`
	DailyReward         RewardTable `yaml:"daily_reward"`
	DropChances         DropTable   `yaml:"drop_chances"`
	ShopItems           []ShopEntry `yaml:"shop_items"`
}
