// Package settings_repo persists the singleton pricing settings record.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
)

const settingsTable = "sys_pricing_settings"

// SettingsRepo implements settings.Repository. The table holds a
// single row; Upsert keys on id so concurrent saves keep it that way.
type SettingsRepo struct {
	txManager *postgres.TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txManager: txManager}
}

func (r *SettingsRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get returns the settings record, or not-found before first save.
func (r *SettingsRepo) Get(ctx context.Context) (*settings.PricingSettings, error) {
	cols := postgres.ExtractDBColumns[settings.PricingSettings]()

	q := r.builder().
		Select(cols...).
		From(settingsTable).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s settings.PricingSettings
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(settingsTable, "singleton")
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Upsert writes the record, inserting on first save.
func (r *SettingsRepo) Upsert(ctx context.Context, s *settings.PricingSettings) error {
	sql := `
		INSERT INTO sys_pricing_settings (id, deletion_mark, version, attributes, active_global_default, delivery_tariffs, catalog_feed_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			active_global_default = EXCLUDED.active_global_default,
			delivery_tariffs = EXCLUDED.delivery_tariffs,
			catalog_feed_url = EXCLUDED.catalog_feed_url,
			version = sys_pricing_settings.version + 1
	`

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		s.ID, s.DeletionMark, s.Version, s.Attributes,
		s.ActiveGlobalDefault, s.DeliveryTariffs, s.CatalogFeedURL,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}
