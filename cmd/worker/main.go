// Package main is the entry point for the background worker. It drains
// the transactional outbox and relays accepted quotes to Fatture in
// Cloud.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/invoicing/fic"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/document_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/settings_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting preventivatore worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerService := customer.NewService(customerRepo, txManager, numeratorService)

	settingsRepo := settings_repo.NewSettingsRepo(txManager)
	settingsService := settings.NewService(settingsRepo, txManager)

	// The worker never prices anything, but the quote service wants an
	// engine; an empty index keeps the wiring honest.
	pricingEngine := pricing.NewEngine(catalog.NewIndex(log), log)

	quoteRepo := document_repo.NewQuoteRepo(txManager)
	quoteService := quote.NewService(
		quoteRepo,
		customerService,
		settingsService,
		pricingEngine,
		numeratorService,
		txManager,
		postgres.NewOutboxPublisher(txManager),
		auditService,
	)

	ficClient := fic.NewClient(fic.Config{
		BaseURL:   getEnv("FIC_BASE_URL", fic.DefaultBaseURL),
		CompanyID: mustEnvInt64("FIC_COMPANY_ID"),
		Token: fic.TokenConfig{
			ClientID:     mustEnv("FIC_CLIENT_ID"),
			ClientSecret: mustEnv("FIC_CLIENT_SECRET"),
			RefreshToken: mustEnv("FIC_REFRESH_TOKEN"),
		},
	})
	syncService := fic.NewSyncService(quoteService, customerService, ficClient)

	relay := postgres.NewOutboxRelay(pool, getEnvInt("OUTBOX_BATCH_SIZE", 100), syncService)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runRelay(ctx, relay, log)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// runRelay polls the outbox until the context is cancelled. Messages
// that exhaust their retry budget are parked hourly in the DLQ.
func runRelay(ctx context.Context, relay *postgres.OutboxRelay, log *logger.Logger) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	dlqTicker := time.NewTicker(1 * time.Hour)
	defer dlqTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			processed, err := relay.ProcessBatch(ctx)
			if err != nil {
				log.Errorw("outbox batch failed", "error", err)
				continue
			}
			if processed > 0 {
				log.Debugw("processed outbox batch", "count", processed)
			}

		case <-dlqTicker.C:
			moved, err := relay.MoveToDLQ(ctx)
			if err != nil {
				log.Errorw("dlq sweep failed", "error", err)
				continue
			}
			if moved > 0 {
				log.Warnw("moved exhausted messages to dlq", "count", moved)
			}
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func mustEnvInt64(key string) int64 {
	result, err := strconv.ParseInt(mustEnv(key), 10, 64)
	if err != nil {
		fmt.Printf("environment variable %s must be an integer\n", key)
		os.Exit(1)
	}
	return result
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
