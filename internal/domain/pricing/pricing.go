// Package pricing implements the versioned price computation for grids
// (griglie) and perimeter spacers (canalini). It is a pure library: every
// computation is a function of the line input, the catalog index and the
// selected price-list version, with no ambient state.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// LineInput describes one configurable line item, as collected upstream
// (raw dimensions, grid structure, spacer selection, base per-meter prices).
type LineInput struct {
	// Raw dimensions in millimeters, before cut rounding.
	WidthMM  int
	HeightMM int

	// Quantity multiplies the unit price into the extended price.
	Quantity int

	// Internal grid structure: number of bars per axis.
	HorizontalBars int
	VerticalBars   int

	// SpacerType classifies the perimeter spacer material
	// ("ALLUMINIO", "BORDO CALDO", "FIBRA", empty or "NESSUNO").
	SpacerType string

	// SpacerCode selects a bare spacer product (e.g. "C211");
	// only consulted when SoloSpacer is set.
	SpacerCode string

	// SoloSpacer marks a bare perimeter spacer strip with no grid.
	SoloSpacer bool

	// Base per-linear-meter prices resolved upstream from the product,
	// model and finish selection.
	BaseGridUnitPrice   types.Money
	BaseSpacerUnitPrice types.Money
}

// Result is the outcome of pricing a single line.
// ExtendedPrice is always UnitPrice multiplied by quantity, never
// computed independently.
type Result struct {
	UnitPrice     types.Money
	ExtendedPrice types.Money
}

// ZeroResult is returned whenever pricing cannot proceed (catalog not
// loaded, no grid, unmapped spacer code). Degrading to zero instead of
// failing keeps quote drafting available; callers gate display on the
// catalog loaded flag.
func ZeroResult() Result {
	return Result{UnitPrice: types.Zero(), ExtendedPrice: types.Zero()}
}

// extend applies the quantity multiplier to a unit price.
func extend(unit types.Money, quantity int) Result {
	return Result{
		UnitPrice:     unit,
		ExtendedPrice: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// CodeLookup is the catalog surface the engine needs: a code-to-price
// index plus the gate flag set once ingestion completes.
type CodeLookup interface {
	// Lookup resolves a surcharge code to its price; unknown codes
	// resolve to zero, never an error.
	Lookup(ctx context.Context, code string) types.Money

	// Loaded reports whether the catalog has been ingested.
	Loaded() bool
}
