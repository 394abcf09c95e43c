// Package customer provides the Customer catalog: the glazing workshops
// and window manufacturers the company sells to.
package customer

import (
	"context"
	"regexp"
	"strings"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

var (
	whitespaceRE = regexp.MustCompile(`\s`)
	vatRE        = regexp.MustCompile(`^\d{11}$`)
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Customer represents one B2B account. Pricing override fields are
// optional: a zero/default value means "follow the global settings".
type Customer struct {
	entity.Catalog

	// BusinessName is the official registered name.
	BusinessName *string `db:"business_name" json:"businessName,omitempty"`

	// VATNumber is the partita IVA (11 digits).
	VATNumber *string `db:"vat_number" json:"vatNumber,omitempty"`

	// FiscalCode is the codice fiscale when it differs from the VAT number.
	FiscalCode *string `db:"fiscal_code" json:"fiscalCode,omitempty"`

	// SDICode is the electronic invoicing recipient code.
	SDICode *string `db:"sdi_code" json:"sdiCode,omitempty"`

	Address *string `db:"address" json:"address,omitempty"`
	City    *string `db:"city" json:"city,omitempty"`
	ZIP     *string `db:"zip" json:"zip,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`

	// ContactPerson is the primary contact name.
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// PriceListMode selects the customer's price list: "default" (or
	// empty) follows the global setting, otherwise a list identifier
	// such as "2025-a" or "2025x".
	PriceListMode string `db:"price_list_mode" json:"priceListMode"`

	// DeliveryTariffCode keys into the settings' tariff table.
	DeliveryTariffCode string `db:"delivery_tariff_code" json:"deliveryTariffCode"`

	// DetractionValue is the per-line discount subtracted at quote time.
	DetractionValue *types.Money `db:"detraction_value" json:"detractionValue,omitempty"`

	// FICClientID links the customer to its Fatture in Cloud client
	// record; set lazily on the first invoicing sync.
	FICClientID *int64 `db:"fic_client_id" json:"ficClientId,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog:       entity.NewCatalog(code, name),
		PriceListMode: pricing.DefaultListMode,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.VATNumber != nil && *c.VATNumber != "" {
		cleaned := whitespaceRE.ReplaceAllString(*c.VATNumber, "")
		cleaned = strings.TrimPrefix(strings.ToUpper(cleaned), "IT")
		if !vatRE.MatchString(cleaned) {
			return apperror.NewValidation("VAT number must be 11 digits").
				WithDetail("field", "vatNumber").
				WithDetail("value", *c.VATNumber)
		}
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if c.DetractionValue != nil && c.DetractionValue.IsNegative() {
		return apperror.NewValidation("detraction value cannot be negative").
			WithDetail("field", "detractionValue")
	}

	return nil
}

// NormalizedVAT returns the VAT number stripped of spaces and the IT
// prefix, or empty when unset.
func (c *Customer) NormalizedVAT() string {
	if c.VATNumber == nil {
		return ""
	}
	cleaned := whitespaceRE.ReplaceAllString(*c.VATNumber, "")
	return strings.TrimPrefix(strings.ToUpper(cleaned), "IT")
}

// PricingOverrides projects the customer onto the pricing resolver input.
func (c *Customer) PricingOverrides() pricing.CustomerOverrides {
	return pricing.CustomerOverrides{
		PriceListMode:      c.PriceListMode,
		DeliveryTariffCode: c.DeliveryTariffCode,
		DetractionValue:    c.DetractionValue,
	}
}
