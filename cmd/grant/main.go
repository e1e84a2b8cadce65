package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/common"
	"starcrystal-economy-go/internal/config"
	"starcrystal-economy-go/internal/models"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	accountFlag := flag.String("account", "", "Account id to credit (required)")
	tierFlag := flag.String("tier", "low", "Crystal tier: low, medium, high or supreme")
	amountFlag := flag.Int64("amount", 0, "Number of crystals to grant (required, positive)")
	flag.Parse()

	if *accountFlag == "" {
		zap.L().Fatal("Missing required -account flag")
	}
	tier, ok := models.ParseTier(*tierFlag)
	if !ok {
		zap.L().Fatal("Unknown tier", zap.String("tier", *tierFlag))
	}
	if *amountFlag <= 0 {
		zap.L().Fatal("Amount must be positive", zap.Int64("amount", *amountFlag))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if err := services.Economy.Deposit(ctx, *accountFlag, tier, *amountFlag); err != nil {
		zap.L().Fatal("Failed to grant crystals", zap.Error(err))
	}

	total, err := services.Economy.TotalValue(*accountFlag)
	if err != nil {
		zap.L().Fatal("Failed to value account", zap.Error(err))
	}

	fmt.Printf("Granted %d %s(s) to %s\n", *amountFlag, tier.Label(), *accountFlag)
	fmt.Printf("Holdings: %s\n", common.FormatHoldings(services.Economy.BalanceDisplay(*accountFlag)))
	fmt.Printf("Total: %d base units (%s)\n", total, common.WealthLabel(total))

	zap.L().Info("Grant completed",
		zap.String("account_id", *accountFlag),
		zap.String("tier", tier.String()),
		zap.Int64("amount", *amountFlag))
}
