package pricing

import (
	"context"
	"strings"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// stubCatalog is a synthetic code index for engine tests.
type stubCatalog struct {
	prices map[string]string
	ready  bool
}

func (s stubCatalog) Lookup(_ context.Context, code string) types.Money {
	if p, ok := s.prices[strings.ToUpper(code)]; ok {
		return types.MustMoney(p)
	}
	return types.Zero()
}

func (s stubCatalog) Loaded() bool { return s.ready }

func testEngine(prices map[string]string) *Engine {
	return NewEngine(stubCatalog{prices: prices, ready: true}, nil)
}

func assertResult(t *testing.T, got Result, unit, extended string) {
	t.Helper()
	if !got.UnitPrice.Equal(types.MustMoney(unit)) {
		t.Errorf("UnitPrice = %s, want %s", got.UnitPrice, unit)
	}
	if !got.ExtendedPrice.Equal(types.MustMoney(extended)) {
		t.Errorf("ExtendedPrice = %s, want %s", got.ExtendedPrice, extended)
	}
}

func TestPriceCross2026(t *testing.T) {
	e := testEngine(nil)

	// 1000x500, one bar per axis: grid = 1.5 m, unit = 1.5*(10+5).
	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 500, Quantity: 2,
		HorizontalBars: 1, VerticalBars: 1,
		SpacerType:          "ALLUMINIO",
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}, List2026A)

	assertResult(t, res, "22.5", "45")
}

func TestPriceSingleWithAccessories2026(t *testing.T) {
	e := testEngine(map[string]string{
		"S001": "5",   // setup, grid under 2 m
		"S003": "3",   // aluminum, tier S
		"S002": "100", // must not be picked
	})

	// 600x400, one vertical bar: perimeter 2.0 (tier S), grid 0.4.
	// unit = 0.4*10 + S003 + S001 = 4 + 3 + 5.
	res := e.Price(context.Background(), LineInput{
		WidthMM: 600, HeightMM: 400, Quantity: 1,
		HorizontalBars: 0, VerticalBars: 1,
		SpacerType:        "ALLUMINIO",
		BaseGridUnitPrice: types.MustMoney("10"),
	}, List2026A)

	assertResult(t, res, "12", "12")
}

func TestPriceUnmappedSpacerTypeContributesZero(t *testing.T) {
	e := testEngine(map[string]string{"S001": "5"})

	res := e.Price(context.Background(), LineInput{
		WidthMM: 600, HeightMM: 400, Quantity: 1,
		HorizontalBars: 0, VerticalBars: 1,
		SpacerType:        "LEGNO",
		BaseGridUnitPrice: types.MustMoney("10"),
	}, List2026A)

	// perimeter surcharge drops out, setup remains: 0.4*10 + 0 + 5.
	assertResult(t, res, "9", "9")
}

func TestPriceSoloSpacer(t *testing.T) {
	e := testEngine(nil)

	// 1000x1000: perimeter 4.0 m, C211 multiplier 2.5.
	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 1000, Quantity: 3,
		SoloSpacer: true, SpacerCode: "C211",
	}, List2026A)
	assertResult(t, res, "10", "30")

	// Unmapped solo code prices to zero, quantity ignored.
	res = e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 1000, Quantity: 3,
		SoloSpacer: true, SpacerCode: "ZZZ999",
	}, List2026A)
	assertResult(t, res, "0", "0")
}

func TestPriceLegacyMultipliers(t *testing.T) {
	e := testEngine(nil)

	single := LineInput{
		WidthMM: 600, HeightMM: 400, Quantity: 1,
		HorizontalBars: 0, VerticalBars: 1,
		SpacerType:          "ALLUMINIO",
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}
	parallel := single
	parallel.VerticalBars = 2

	// 2025-a: no accessory lookups, grid*(g+s)*mult.
	// SINGLE: 0.4*15*1.5, PARALLEL: 0.8*15*1.2.
	assertResult(t, e.Price(context.Background(), single, List2025A), "9", "9")
	assertResult(t, e.Price(context.Background(), parallel, List2025A), "14.4", "14.4")

	// 2025x: +1.00 on both bases, x1.2 for SINGLE too.
	// SINGLE: 0.4*17*1.2 = 8.16, PARALLEL: 0.8*17*1.2 = 16.32.
	assertResult(t, e.Price(context.Background(), single, List2025X), "8.16", "8.16")
	assertResult(t, e.Price(context.Background(), parallel, List2025X), "16.32", "16.32")
}

func TestPriceLegacyOverrideUsesCrossFormula(t *testing.T) {
	e := testEngine(nil)

	// Horizontal-only, no spacer: 2025 lists force the cross formula.
	// grid = 2*1000/1000 = 2.0, unit = 2*(10+5) = 30, not 36 (x1.2).
	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 500, Quantity: 1,
		HorizontalBars: 2, VerticalBars: 0,
		SpacerType:          "",
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}, List2025A)

	assertResult(t, res, "30", "30")
}

func TestPrice2025XSurchargeOnCross(t *testing.T) {
	e := testEngine(nil)

	// Effective bases 11 and 6: 1.5*(11+6) = 25.5.
	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 500, Quantity: 1,
		HorizontalBars: 1, VerticalBars: 1,
		SpacerType:          "ALLUMINIO",
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}, List2025X)

	assertResult(t, res, "25.5", "25.5")
}

func TestPriceNoGridIsZero(t *testing.T) {
	e := testEngine(nil)

	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 500, Quantity: 4,
		BaseGridUnitPrice: types.MustMoney("10"),
	}, List2026A)

	assertResult(t, res, "0", "0")
}

func TestPriceCatalogNotLoaded(t *testing.T) {
	e := NewEngine(stubCatalog{ready: false}, nil)

	res := e.Price(context.Background(), LineInput{
		WidthMM: 1000, HeightMM: 500, Quantity: 2,
		HorizontalBars: 1, VerticalBars: 1,
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}, List2026A)

	assertResult(t, res, "0", "0")
}

func TestPriceForListDefaultsToCurrent(t *testing.T) {
	e := testEngine(map[string]string{"S001": "5", "S003": "3"})

	in := LineInput{
		WidthMM: 600, HeightMM: 400, Quantity: 1,
		HorizontalBars: 0, VerticalBars: 1,
		SpacerType:        "ALLUMINIO",
		BaseGridUnitPrice: types.MustMoney("10"),
	}

	want := e.PriceForList(context.Background(), in, "2026-a")
	for _, raw := range []string{"bogus", "", "2027-z"} {
		got := e.PriceForList(context.Background(), in, raw)
		if !got.UnitPrice.Equal(want.UnitPrice) || !got.ExtendedPrice.Equal(want.ExtendedPrice) {
			t.Errorf("list %q: result %+v, want %+v", raw, got, want)
		}
	}
}

func TestPriceIsPure(t *testing.T) {
	e := testEngine(map[string]string{"S001": "5", "S003": "3"})

	in := LineInput{
		WidthMM: 600, HeightMM: 400, Quantity: 7,
		HorizontalBars: 0, VerticalBars: 1,
		SpacerType:          "ALLUMINIO",
		BaseGridUnitPrice:   types.MustMoney("10"),
		BaseSpacerUnitPrice: types.MustMoney("5"),
	}

	for _, v := range []Version{List2026A, List2025A, List2025X} {
		first := e.Price(context.Background(), in, v)
		second := e.Price(context.Background(), in, v)
		if !first.UnitPrice.Equal(second.UnitPrice) || !first.ExtendedPrice.Equal(second.ExtendedPrice) {
			t.Errorf("%s: repeated call diverged: %+v vs %+v", v, first, second)
		}
	}
}

func TestExtendedPriceLaw(t *testing.T) {
	e := testEngine(map[string]string{"S001": "5", "S002": "8", "S003": "3", "S007": "4"})

	inputs := []LineInput{
		{WidthMM: 1000, HeightMM: 500, Quantity: 3, HorizontalBars: 1, VerticalBars: 1,
			SpacerType: "ALLUMINIO", BaseGridUnitPrice: types.MustMoney("10"), BaseSpacerUnitPrice: types.MustMoney("5")},
		{WidthMM: 2400, HeightMM: 1800, Quantity: 5, HorizontalBars: 0, VerticalBars: 3,
			SpacerType: "BORDO CALDO", BaseGridUnitPrice: types.MustMoney("7.35")},
		{WidthMM: 900, HeightMM: 900, Quantity: 11, SoloSpacer: true, SpacerCode: "C112"},
		{WidthMM: 500, HeightMM: 500, Quantity: 2},
	}

	for _, v := range []Version{List2026A, List2025A, List2025X} {
		for i, in := range inputs {
			res := e.Price(context.Background(), in, v)
			want := res.UnitPrice.Mul(types.NewMoney(float64(in.Quantity)))
			if !res.ExtendedPrice.Equal(want) {
				t.Errorf("%s input %d: extended %s != unit %s * %d",
					v, i, res.ExtendedPrice, res.UnitPrice, in.Quantity)
			}
		}
	}
}
