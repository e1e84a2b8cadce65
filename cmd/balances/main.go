package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/common"
	"starcrystal-economy-go/internal/config"
	"starcrystal-economy-go/internal/economy"
	"starcrystal-economy-go/internal/models"
)

type reportStats struct {
	totalAccounts    int
	accountsWithHeld int
	totalBaseUnits   int64
}

func printAccountHeader(accountId string, record models.AccountRecord) {
	fmt.Printf("\n┌─ Account: %s\n", accountId)
	if !record.LastDailyReward.IsZero() {
		fmt.Printf("│  Last daily reward: %s\n", record.LastDailyReward.Format("2006-01-02 15:04:05"))
	}
	common.PrintBoxSeparator(78)
}

func printHoldings(crystals []models.Crystal) {
	for i, crystal := range crystals {
		symbol := common.BoxPrefix(i == len(crystals)-1)
		fmt.Printf("%s %-28s: %12d\n", symbol, crystal.Tier.Label(), crystal.Amount)
	}
}

func processAccount(accountId string, record models.AccountRecord, service *economy.Service) (int64, error) {
	total, err := service.TotalValue(accountId)
	if err != nil {
		return 0, fmt.Errorf("failed to value account: %w", err)
	}

	printAccountHeader(accountId, record)
	printHoldings(service.BalanceDisplay(accountId))
	fmt.Printf("└  total: %d base units (%s)\n", total, common.WealthLabel(total))

	return total, nil
}

func generateReport(service *economy.Service, accountFilter string) reportStats {
	stats := reportStats{}

	snapshot := service.Ledger().Snapshot()
	accountIds := make([]string, 0, len(snapshot.Accounts))
	for accountId := range snapshot.Accounts {
		if accountFilter != "" && accountId != accountFilter {
			continue
		}
		accountIds = append(accountIds, accountId)
	}
	sort.Strings(accountIds)

	for _, accountId := range accountIds {
		stats.totalAccounts++

		total, err := processAccount(accountId, snapshot.Accounts[accountId], service)
		if err != nil {
			zap.L().Error("Failed to process account",
				zap.String("account_id", accountId),
				zap.Error(err))
			continue
		}

		if total > 0 {
			stats.accountsWithHeld++
			stats.totalBaseUnits += total
		}
	}

	return stats
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	accountFlag := flag.String("account", "", "Filter by specific account id (optional)")
	flag.Parse()

	zap.L().Info("Starting balance query")

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	common.PrintHeader("ACCOUNT BALANCE REPORT", common.DefaultWidth)

	stats := generateReport(services.Economy, *accountFlag)

	summary := fmt.Sprintf("SUMMARY: %d accounts hold crystals (%d base units across %d accounts queried)",
		stats.accountsWithHeld, stats.totalBaseUnits, stats.totalAccounts)
	common.PrintFooter(summary, common.DefaultWidth)

	zap.L().Info("Balance query completed",
		zap.Int("accounts_queried", stats.totalAccounts),
		zap.Int("accounts_with_crystals", stats.accountsWithHeld),
		zap.Int64("total_base_units", stats.totalBaseUnits))
}
