package dto

import (
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
)

// SettingsResponse is the global pricing configuration.
type SettingsResponse struct {
	ID                  string             `json:"id"`
	ActiveGlobalDefault string             `json:"activeGlobalDefault"`
	DeliveryTariffs     settings.TariffMap `json:"deliveryTariffs"`
	CatalogFeedURL      string             `json:"catalogFeedUrl"`
	Version             int                `json:"version"`
}

// FromSettings creates a response DTO.
func FromSettings(s *settings.PricingSettings) *SettingsResponse {
	return &SettingsResponse{
		ID:                  s.ID.String(),
		ActiveGlobalDefault: s.ActiveGlobalDefault,
		DeliveryTariffs:     s.DeliveryTariffs,
		CatalogFeedURL:      s.CatalogFeedURL,
		Version:             s.Version,
	}
}

// UpdateSettingsRequest replaces the global pricing configuration.
type UpdateSettingsRequest struct {
	ActiveGlobalDefault string             `json:"activeGlobalDefault" binding:"required"`
	DeliveryTariffs     settings.TariffMap `json:"deliveryTariffs"`
	CatalogFeedURL      string             `json:"catalogFeedUrl"`
	Version             int                `json:"version" binding:"required"`
}

// ApplyTo applies the update onto the stored record.
func (r *UpdateSettingsRequest) ApplyTo(s *settings.PricingSettings) {
	s.ActiveGlobalDefault = r.ActiveGlobalDefault
	s.DeliveryTariffs = r.DeliveryTariffs
	s.CatalogFeedURL = r.CatalogFeedURL
	s.Version = r.Version
}
