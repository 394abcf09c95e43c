package pricing

import (
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

func testSettings() Settings {
	return Settings{
		ActiveList: "2026-a",
		DeliveryTariffs: map[string]types.Money{
			"Spedizione Standard": types.MustMoney("25"),
			"Corriere Espresso":   types.MustMoney("40"),
			"Ritiro in sede":      types.Zero(),
		},
	}
}

func TestResolveDefaults(t *testing.T) {
	ctx := Resolve(testSettings(), CustomerOverrides{})

	if ctx.ActiveList != List2026A || ctx.ActiveListRaw != "2026-a" {
		t.Errorf("ActiveList = %s (%q), want 2026-a", ctx.ActiveList, ctx.ActiveListRaw)
	}
	// The default tariff name is itself looked up in the tariff table.
	if ctx.TariffName != DefaultTariffName {
		t.Errorf("TariffName = %q, want %q", ctx.TariffName, DefaultTariffName)
	}
	if !ctx.DeliveryCost.Equal(types.MustMoney("25")) {
		t.Errorf("DeliveryCost = %s, want 25", ctx.DeliveryCost)
	}
	if !ctx.Detraction.IsZero() {
		t.Errorf("Detraction = %s, want zero", ctx.Detraction)
	}
}

func TestResolveCustomerListOverride(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want Version
	}{
		{"explicit legacy list wins", "2025x", List2025X},
		{"default mode follows settings", "default", List2026A},
		{"empty mode follows settings", "", List2026A},
		{"unrecognized mode falls back", "2019-q", List2026A},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(testSettings(), CustomerOverrides{PriceListMode: tt.mode})
			if ctx.ActiveList != tt.want {
				t.Errorf("ActiveList = %s, want %s", ctx.ActiveList, tt.want)
			}
		})
	}
}

func TestResolveTariff(t *testing.T) {
	ctx := Resolve(testSettings(), CustomerOverrides{DeliveryTariffCode: "Corriere Espresso"})
	if ctx.TariffName != "Corriere Espresso" || !ctx.DeliveryCost.Equal(types.MustMoney("40")) {
		t.Errorf("tariff = %q/%s, want Corriere Espresso/40", ctx.TariffName, ctx.DeliveryCost)
	}

	// Unmapped tariff name: it is kept for display, costs zero.
	ctx = Resolve(testSettings(), CustomerOverrides{DeliveryTariffCode: "Zona Isole"})
	if ctx.TariffName != "Zona Isole" || !ctx.DeliveryCost.IsZero() {
		t.Errorf("unmapped tariff = %q/%s, want Zona Isole/0", ctx.TariffName, ctx.DeliveryCost)
	}
}

func TestResolveDetraction(t *testing.T) {
	d := types.MustMoney("3.50")
	ctx := Resolve(testSettings(), CustomerOverrides{DetractionValue: &d})
	if !ctx.Detraction.Equal(d) {
		t.Errorf("Detraction = %s, want 3.50", ctx.Detraction)
	}
}
