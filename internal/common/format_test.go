package common

import (
	"testing"

	"starcrystal-economy-go/internal/models"
)

func TestFormatCrystalPluralizes(t *testing.T) {
	one := FormatCrystal(models.Crystal{Tier: models.TierHigh, Amount: 1})
	if one != "1 high-grade star crystal" {
		t.Errorf("Unexpected singular form: %q", one)
	}

	many := FormatCrystal(models.Crystal{Tier: models.TierLow, Amount: 70})
	if many != "70 low-grade star crystals" {
		t.Errorf("Unexpected plural form: %q", many)
	}
}

func TestFormatHoldings(t *testing.T) {
	if got := FormatHoldings(nil); got != "no star crystals" {
		t.Errorf("Unexpected empty holdings: %q", got)
	}

	got := FormatHoldings([]models.Crystal{
		{Tier: models.TierSupreme, Amount: 2},
		{Tier: models.TierLow, Amount: 5},
	})
	want := "2 supreme-grade star crystals, 5 low-grade star crystals"
	if got != want {
		t.Errorf("FormatHoldings = %q, want %q", got, want)
	}
}

func TestWealthLabelThresholds(t *testing.T) {
	tests := []struct {
		total int64
		want  string
	}{
		{0, "struggling novice"},
		{999, "struggling novice"},
		{1_000, "settled trader"},
		{10_000, "wealthy merchant"},
		{100_000, "grand magnate"},
		{1_000_000, "legendary tycoon"},
	}

	for _, tt := range tests {
		if got := WealthLabel(tt.total); got != tt.want {
			t.Errorf("WealthLabel(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}
