package customer

import (
	"context"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

func strPtr(s string) *string { return &s }

func TestCustomerValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Customer)
		wantErr bool
	}{
		{"minimal valid", func(c *Customer) {}, false},
		{"missing name", func(c *Customer) { c.Name = "" }, true},
		{"valid VAT", func(c *Customer) { c.VATNumber = strPtr("01234567890") }, false},
		{"VAT with IT prefix", func(c *Customer) { c.VATNumber = strPtr("IT01234567890") }, false},
		{"VAT with spaces", func(c *Customer) { c.VATNumber = strPtr("01234 567 890") }, false},
		{"VAT too short", func(c *Customer) { c.VATNumber = strPtr("0123456789") }, true},
		{"VAT not numeric", func(c *Customer) { c.VATNumber = strPtr("0123456789A") }, true},
		{"valid email", func(c *Customer) { c.Email = strPtr("ordini@vetreria.it") }, false},
		{"broken email", func(c *Customer) { c.Email = strPtr("ordini@") }, true},
		{"negative detraction", func(c *Customer) {
			d := types.MustMoney("-1")
			c.DetractionValue = &d
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCustomer("CLI-001", "Vetreria Rossi")
			tt.mutate(c)
			err := c.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizedVAT(t *testing.T) {
	c := NewCustomer("CLI-001", "Vetreria Rossi")
	if got := c.NormalizedVAT(); got != "" {
		t.Errorf("NormalizedVAT() on unset = %q, want empty", got)
	}

	c.VATNumber = strPtr("it 01234 567 890")
	if got := c.NormalizedVAT(); got != "01234567890" {
		t.Errorf("NormalizedVAT() = %q, want 01234567890", got)
	}
}

func TestPricingOverrides(t *testing.T) {
	c := NewCustomer("CLI-001", "Vetreria Rossi")
	if got := c.PricingOverrides(); got.PriceListMode != pricing.DefaultListMode {
		t.Errorf("new customer PriceListMode = %q, want %q", got.PriceListMode, pricing.DefaultListMode)
	}

	d := types.MustMoney("2.5")
	c.PriceListMode = "2025x"
	c.DeliveryTariffCode = "NORD"
	c.DetractionValue = &d

	got := c.PricingOverrides()
	if got.PriceListMode != "2025x" || got.DeliveryTariffCode != "NORD" {
		t.Errorf("overrides = %+v", got)
	}
	if got.DetractionValue == nil || !got.DetractionValue.Equal(d) {
		t.Errorf("DetractionValue = %v, want 2.5", got.DetractionValue)
	}
}
