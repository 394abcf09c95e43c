// Package main is the entry point for the preventivatore API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/auth"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	v1 "github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/invoicing/fic"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/document_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/settings_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting preventivatore server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Core services ---
	numeratorService := numerator.New(pool)

	outboxPublisher := postgres.NewOutboxPublisher(txManager)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Customers ---
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerService := customer.NewService(customerRepo, txManager, numeratorService)

	// --- Pricing settings ---
	settingsRepo := settings_repo.NewSettingsRepo(txManager)
	settingsService := settings.NewService(settingsRepo, txManager)

	// --- Catalog feed ---
	catalogIndex := catalog.NewIndex(log)

	feedURL := getEnv("CATALOG_FEED_URL", "")
	if feedURL == "" {
		if cfg, err := settingsService.Get(ctx); err == nil {
			feedURL = cfg.CatalogFeedURL
		}
	}
	catalogLoader := catalog.NewLoader(feedURL, catalogIndex, nil, log)

	// The feed loads in the background: quotes can be drafted while the
	// feed is down, prices just degrade to zero until a reload succeeds.
	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := catalogLoader.Load(loadCtx); err != nil {
			log.Warnw("initial catalog load failed", "url", feedURL, "error", err)
			return
		}
		log.Infow("catalog loaded", "entries", catalogIndex.Len())
	}()

	pricingEngine := pricing.NewEngine(catalogIndex, log)

	// --- Quotes ---
	quoteRepo := document_repo.NewQuoteRepo(txManager)
	quoteService := quote.NewService(
		quoteRepo,
		customerService,
		settingsService,
		pricingEngine,
		numeratorService,
		txManager,
		outboxPublisher,
		auditService,
	)

	// --- Invoicing sync (optional: delivery notes need it) ---
	var invoicingSync *fic.SyncService
	if companyID := getEnvInt64("FIC_COMPANY_ID", 0); companyID > 0 {
		ficClient := fic.NewClient(fic.Config{
			BaseURL:   getEnv("FIC_BASE_URL", fic.DefaultBaseURL),
			CompanyID: companyID,
			Token: fic.TokenConfig{
				ClientID:     mustEnv("FIC_CLIENT_ID"),
				ClientSecret: mustEnv("FIC_CLIENT_SECRET"),
				RefreshToken: mustEnv("FIC_REFRESH_TOKEN"),
			},
		})
		invoicingSync = fic.NewSyncService(quoteService, customerService, ficClient)
		log.Infow("invoicing sync enabled", "company_id", companyID)
	} else {
		log.Warn("invoicing sync disabled: FIC_COMPANY_ID not set")
	}

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		JWTValidator:  jwtService,
		Quotes:        quoteService,
		Customers:     customerService,
		Settings:      settingsService,
		Engine:        pricingEngine,
		CatalogIndex:  catalogIndex,
		CatalogLoader: catalogLoader,
		InvoicingSync: invoicingSync,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
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

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseInt(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultValue
}
