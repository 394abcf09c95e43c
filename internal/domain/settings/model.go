// Package settings provides the single global pricing configuration
// record: the active price list, the delivery tariff table and the
// catalog feed location.
package settings

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

// TariffMap maps a delivery tariff name to its cost. Stored as JSONB.
type TariffMap map[string]types.Money

// Value implements driver.Valuer.
func (m TariffMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *TariffMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TariffMap", src)
	}
	return json.Unmarshal(data, m)
}

// PricingSettings is the singleton configuration record.
type PricingSettings struct {
	entity.BaseEntity

	// ActiveGlobalDefault is the price-list identifier customers
	// without an override resolve to.
	ActiveGlobalDefault string `db:"active_global_default" json:"activeGlobalDefault"`

	// DeliveryTariffs keys tariff names to delivery costs.
	DeliveryTariffs TariffMap `db:"delivery_tariffs" json:"deliveryTariffs"`

	// CatalogFeedURL is where the published CSV price feed lives.
	CatalogFeedURL string `db:"catalog_feed_url" json:"catalogFeedUrl"`
}

// NewPricingSettings creates a settings record with defaults.
func NewPricingSettings() *PricingSettings {
	return &PricingSettings{
		BaseEntity:          entity.NewBaseEntity(),
		ActiveGlobalDefault: pricing.List2026A.String(),
		DeliveryTariffs:     TariffMap{},
	}
}

// Validate implements entity.Validatable.
func (s *PricingSettings) Validate(ctx context.Context) error {
	if s.ActiveGlobalDefault == "" {
		return apperror.NewValidation("active_global_default is required").
			WithDetail("field", "activeGlobalDefault")
	}
	for name, cost := range s.DeliveryTariffs {
		if name == "" {
			return apperror.NewValidation("tariff name cannot be empty")
		}
		if cost.IsNegative() {
			return apperror.NewValidation("tariff cost cannot be negative").
				WithDetail("tariff", name)
		}
	}
	return nil
}

// ResolverSettings projects the record onto the pricing resolver input.
func (s *PricingSettings) ResolverSettings() pricing.Settings {
	return pricing.Settings{
		ActiveList:      s.ActiveGlobalDefault,
		DeliveryTariffs: s.DeliveryTariffs,
	}
}
