package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/switchpay/switchpay-go/internal/backend"
	"github.com/switchpay/switchpay-go/internal/config"
	"github.com/switchpay/switchpay-go/internal/eventbus"
	"github.com/switchpay/switchpay-go/internal/handler"
	"github.com/switchpay/switchpay-go/internal/server"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting demo backend")

	store := backend.NewStore()
	log.Info(ctx, "Transaction store initialized")

	idem, err := backend.OpenIdempotencyStore(cfg.Backend.IdempotencyDBPath)
	if err != nil {
		log.Fatal(ctx, "Failed to open idempotency store",
			"path", cfg.Backend.IdempotencyDBPath,
			"error", err,
		)
	}
	log.Info(ctx, "Idempotency store opened",
		"path", cfg.Backend.IdempotencyDBPath,
	)

	busCfg := &eventbus.Config{
		ChannelBuffer: cfg.Backend.ChannelBufferSize,
		MaxRetries:    cfg.Backend.MaxRetries,
	}
	bus := eventbus.New(log, busCfg)

	settlementConsumer := eventbus.NewSettlementConsumer(store, log, cfg.Backend.WorkerPoolSize)
	if err := bus.Subscribe(eventbus.EventTypeStatusUpdate, settlementConsumer); err != nil {
		log.Fatal(ctx, "Failed to subscribe consumer",
			"error", err,
		)
	}

	if err := bus.Start(ctx); err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}
	log.Info(ctx, "Event bus started",
		"worker_count", cfg.Backend.WorkerPoolSize,
	)

	transactionHandler := handler.NewTransactionHandler(store, idem, bus, log)
	healthHandler := handler.NewHealthHandler()

	srv := server.New(cfg, log, transactionHandler, healthHandler)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Demo backend started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Backend.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	if err := idem.Close(); err != nil {
		log.Error(shutdownCtx, "Idempotency store close error",
			"error", err,
		)
	}

	log.Info(ctx, "Demo backend stopped gracefully")
}
