package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/common"
	"starcrystal-economy-go/internal/config"
	"starcrystal-economy-go/internal/economy"
)

// sweeper periodically removes expired unsold listings.
type sweeper struct {
	service  *economy.Service
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func newSweeper(service *economy.Service, interval time.Duration) *sweeper {
	return &sweeper{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := s.service.SweepExpired(ctx)
			if err != nil {
				zap.L().Error("Sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				zap.L().Info("Swept expired listings", zap.Int("removed", removed))
			}
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting star crystal economy server")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if !services.Economy.IsEnabled() {
		zap.L().Warn("Economy is disabled in configuration; serving snapshots only")
	}

	sw := newSweeper(services.Economy, cfg.Server.SweepInterval)
	sw.Start(ctx)

	zap.L().Info("Server running",
		zap.Duration("sweep_interval", cfg.Server.SweepInterval))
	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zap.L().Info("Shutdown signal received, saving state...")

	sw.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := services.Economy.SaveAll(shutdownCtx); err != nil {
		zap.L().Error("Failed to save state on shutdown", zap.Error(err))
	} else {
		zap.L().Info("State saved, shutting down")
	}
}
