package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

func TestPricingSettingsValidate(t *testing.T) {
	s := NewPricingSettings()
	if err := s.Validate(context.Background()); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	s.ActiveGlobalDefault = ""
	if err := s.Validate(context.Background()); err == nil {
		t.Error("expected error for empty active list")
	}

	s = NewPricingSettings()
	s.DeliveryTariffs["Spedizione Standard"] = types.MustMoney("-5")
	if err := s.Validate(context.Background()); err == nil {
		t.Error("expected error for negative tariff cost")
	}
}

func TestTariffMapRoundTrip(t *testing.T) {
	m := TariffMap{
		"Spedizione Standard": types.MustMoney("25.00"),
		"Corriere Espresso":   types.MustMoney("40.50"),
	}

	val, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var decoded TariffMap
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !decoded["Corriere Espresso"].Equal(types.MustMoney("40.50")) {
		t.Errorf("round trip lost precision: %s", decoded["Corriere Espresso"])
	}

	// Decimal costs must serialize losslessly, not as binary floats.
	if _, err := json.Marshal(m); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
}

func TestResolverSettingsProjection(t *testing.T) {
	s := NewPricingSettings()
	s.ActiveGlobalDefault = "2025-a"
	s.DeliveryTariffs["Spedizione Standard"] = types.MustMoney("25")

	ctx := pricing.Resolve(s.ResolverSettings(), pricing.CustomerOverrides{})
	if ctx.ActiveList != pricing.List2025A {
		t.Errorf("ActiveList = %s, want 2025-a", ctx.ActiveList)
	}
	if !ctx.DeliveryCost.Equal(types.MustMoney("25")) {
		t.Errorf("DeliveryCost = %s, want 25", ctx.DeliveryCost)
	}
}
