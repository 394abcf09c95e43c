package pricing

import (
	"context"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// The three price lists share one algorithm; the deltas between them
// live entirely in strategyConfig. This replaces the historical
// copy-per-version modules and closes the drift risk between them.
type strategyConfig struct {
	// accessoryLookups enables the setup (S001/S002) and perimeter
	// surcharge catalog lookups for PARALLEL and SINGLE lines.
	accessoryLookups bool

	// baseSurcharge is added to both base unit prices before any
	// formula is applied (2025x: flat 1.00).
	baseSurcharge types.Money

	// Multipliers for the legacy grid+spacer formulas; unused when
	// accessoryLookups is set.
	parallelMultiplier types.Money
	singleMultiplier   types.Money

	// forceCrossWithoutSpacer enables the horizontal-only/no-spacer
	// override (2025 lists only).
	forceCrossWithoutSpacer bool
}

var strategyConfigs = map[Version]strategyConfig{
	List2026A: {
		accessoryLookups: true,
	},
	List2025A: {
		baseSurcharge:           types.Zero(),
		parallelMultiplier:      types.MustMoney("1.2"),
		singleMultiplier:        types.MustMoney("1.5"),
		forceCrossWithoutSpacer: true,
	},
	// 2025x applies a flat +1.00 to both base prices and uses x1.2 for
	// SINGLE as well. The SINGLE multiplier differing from 2025-a's 1.5
	// is unconfirmed with the product owner; reproduce, don't correct.
	List2025X: {
		baseSurcharge:           types.MustMoney("1.00"),
		parallelMultiplier:      types.MustMoney("1.2"),
		singleMultiplier:        types.MustMoney("1.2"),
		forceCrossWithoutSpacer: true,
	},
}

// soloSpacerMultipliers maps bare-spacer product codes to their
// per-linear-meter price multiplier. Shared by every version.
var soloSpacerMultipliers = map[string]types.Money{
	"C111": types.MustMoney("1.5"),
	"C112": types.MustMoney("2.0"),
	"C211": types.MustMoney("2.5"),
	"C311": types.MustMoney("3.0"),
}

// Surcharge code constants for the 2026-a accessory lookups.
const (
	setupCodeShort = "S001" // grid development under 2 m
	setupCodeLong  = "S002"
)

var setupThresholdM = types.MustMoney("2.0")

// perimeterSurchargeCodes indexes the perimeter surcharge by spacer
// material and size tier.
var perimeterSurchargeCodes = map[string]map[SizeTier]string{
	"ALLUMINIO":   {TierS: "S003", TierM: "S004", TierL: "S005", TierXL: "S006"},
	"BORDO CALDO": {TierS: "S007", TierM: "S008", TierL: "S009", TierXL: "S010"},
	"FIBRA":       {TierS: "S011", TierM: "S012", TierL: "S013", TierXL: "S014"},
}

// compute runs the shared algorithm with a version's configuration.
// It is pure: the catalog is read-only and the input is never mutated.
func (e *Engine) compute(ctx context.Context, in LineInput, cfg strategyConfig) Result {
	geo := NormalizeGeometry(in)

	if in.SoloSpacer {
		return e.computeSoloSpacer(ctx, in, geo)
	}

	baseGrid := in.BaseGridUnitPrice.Add(cfg.baseSurcharge)
	baseSpacer := in.BaseSpacerUnitPrice.Add(cfg.baseSurcharge)

	complexity := classifyForVersion(in, cfg)

	var unit types.Money
	switch complexity {
	case ComplexityCross:
		unit = geo.GridLengthM.Mul(baseGrid.Add(baseSpacer))

	case ComplexityParallel, ComplexitySingle:
		if cfg.accessoryLookups {
			unit = geo.GridLengthM.Mul(baseGrid).
				Add(e.perimeterSurcharge(ctx, in.SpacerType, geo.PerimeterM)).
				Add(e.setupCost(ctx, geo.GridLengthM))
			break
		}
		mult := cfg.parallelMultiplier
		if complexity == ComplexitySingle {
			mult = cfg.singleMultiplier
		}
		unit = geo.GridLengthM.Mul(baseGrid.Add(baseSpacer)).Mul(mult)

	default:
		return ZeroResult()
	}

	return extend(unit, in.Quantity)
}

// computeSoloSpacer prices a bare perimeter spacer strip:
// perimeter meters times the fixed per-code multiplier.
func (e *Engine) computeSoloSpacer(ctx context.Context, in LineInput, geo Geometry) Result {
	code := upper(in.SpacerCode)
	mult, ok := soloSpacerMultipliers[code]
	if code == "" || !ok {
		if code != "" {
			e.log.Warnw("solo spacer code has no multiplier", "code", code)
		}
		return ZeroResult()
	}
	return extend(geo.PerimeterM.Mul(mult), in.Quantity)
}

// setupCost returns the per-line setup surcharge, tiered on grid length.
func (e *Engine) setupCost(ctx context.Context, gridLengthM types.Money) types.Money {
	code := setupCodeLong
	if gridLengthM.LessThan(setupThresholdM) {
		code = setupCodeShort
	}
	return e.catalog.Lookup(ctx, code)
}

// perimeterSurcharge resolves the spacer-material surcharge for the
// line's size tier. An unmapped spacer type contributes zero.
func (e *Engine) perimeterSurcharge(ctx context.Context, spacerType string, perimeterM types.Money) types.Money {
	codes, ok := perimeterSurchargeCodes[upper(spacerType)]
	if !ok {
		return types.Zero()
	}
	return e.catalog.Lookup(ctx, codes[TierForPerimeter(perimeterM)])
}
