// Package main provides a CLI tool for seeding the database: default
// pricing settings, a price feed snapshot, and optional demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	appctx "github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/context"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/auth"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres/settings_repo"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedSettings(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed settings", "error", err)
	}

	if feedFile := os.Getenv("FEED_FILE"); feedFile != "" {
		if err := seedPriceFeed(ctx, txManager, feedFile, log); err != nil {
			log.Fatalw("failed to seed price feed", "error", err)
		}
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedSettings writes the default pricing settings record unless one
// already exists.
func seedSettings(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	repo := settings_repo.NewSettingsRepo(txManager)
	service := settings.NewService(repo, txManager)

	if _, err := repo.Get(ctx); err == nil {
		log.Info("pricing settings already present, skipping")
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	defaults := settings.NewPricingSettings()
	if feedURL := os.Getenv("CATALOG_FEED_URL"); feedURL != "" {
		defaults.CatalogFeedURL = feedURL
	}

	if err := service.Update(ctx, defaults); err != nil {
		return err
	}

	log.Infow("seeded pricing settings", "active_list", defaults.ActiveGlobalDefault)
	return nil
}

// seedPriceFeed loads a CSV feed snapshot into catalog_prices via the
// COPY protocol, replacing the previous snapshot.
func seedPriceFeed(ctx context.Context, txManager *postgres.TxManager, path string, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	parsed, err := catalog.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parse feed file: %w", err)
	}
	if len(parsed) == 0 {
		return fmt.Errorf("feed file %s contains no usable rows", path)
	}

	columns := []string{"category", "model", "size", "finish", "finish_group", "code", "price"}
	rows := make([][]any, 0, len(parsed))
	for _, r := range parsed {
		rows = append(rows, []any{r.Category, r.Model, r.Size, r.Finish, r.FinishGroup, r.Code, r.Price})
	}

	inserter := postgres.NewBatchInserter(txManager)

	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := txManager.GetTx(ctx)
		if _, err := tx.Exec(ctx, "TRUNCATE catalog_prices"); err != nil {
			return fmt.Errorf("truncate catalog_prices: %w", err)
		}

		n, err := inserter.CopyFromSlice(ctx, "catalog_prices", columns, rows)
		if err != nil {
			return fmt.Errorf("copy price feed: %w", err)
		}

		log.Infow("seeded price feed", "file", path, "rows", n)
		return nil
	})
}

// seedDemoData creates a demo customer and prints access tokens for
// local development.
func seedDemoData(ctx context.Context, pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) error {
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerService := customer.NewService(customerRepo, txManager, numerator.New(pool))

	demo := customer.NewCustomer("", "Vetreria Demo SRL")
	vat := "IT01234567890"
	email := "acquisti@vetreriademo.example"
	demo.VATNumber = &vat
	demo.Email = &email

	if existing, err := customerService.FindByVAT(ctx, vat); err == nil && existing != nil {
		log.Infow("demo customer already present", "code", existing.Code)
		demo = existing
	} else if err := customerService.Create(ctx, demo); err != nil {
		return fmt.Errorf("create demo customer: %w", err)
	} else {
		log.Infow("seeded demo customer", "code", demo.Code, "id", demo.ID)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Warn("JWT_SECRET not set, skipping demo tokens")
		return nil
	}

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	staffToken, _, err := jwtService.GenerateAccessToken(
		"demo-staff", "", "ufficio@example.com", []string{appctx.RoleStaff}, true)
	if err != nil {
		return fmt.Errorf("generate staff token: %w", err)
	}

	customerToken, _, err := jwtService.GenerateAccessToken(
		"demo-customer", demo.ID.String(), email, []string{appctx.RoleCustomer}, false)
	if err != nil {
		return fmt.Errorf("generate customer token: %w", err)
	}

	fmt.Printf("staff token:    %s\n", staffToken)
	fmt.Printf("customer token: %s\n", customerToken)
	return nil
}
