package common

import (
	"fmt"
	"strings"

	"starcrystal-economy-go/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// Wealth labels by total holdings in base units.
const (
	wealthTycoon   = 1_000_000
	wealthMagnate  = 100_000
	wealthMerchant = 10_000
	wealthSettled  = 1_000
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(char string, width int) {
	fmt.Println("\n" + strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// FormatCrystal renders a single holding, e.g. "37 high-grade star crystals".
func FormatCrystal(crystal models.Crystal) string {
	label := crystal.Tier.Label()
	if crystal.Amount != 1 {
		label += "s"
	}
	return fmt.Sprintf("%d %s", crystal.Amount, label)
}

// FormatHoldings renders a full balance line, holdings joined with ", ".
func FormatHoldings(crystals []models.Crystal) string {
	if len(crystals) == 0 {
		return "no star crystals"
	}
	parts := make([]string, 0, len(crystals))
	for _, crystal := range crystals {
		parts = append(parts, FormatCrystal(crystal))
	}
	return strings.Join(parts, ", ")
}

// WealthLabel classifies an account by its total holdings in base units.
func WealthLabel(totalBaseUnits int64) string {
	switch {
	case totalBaseUnits >= wealthTycoon:
		return "legendary tycoon"
	case totalBaseUnits >= wealthMagnate:
		return "grand magnate"
	case totalBaseUnits >= wealthMerchant:
		return "wealthy merchant"
	case totalBaseUnits >= wealthSettled:
		return "settled trader"
	default:
		return "struggling novice"
	}
}
