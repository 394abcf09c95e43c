package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// CutIncrementMM is the manufacturing cut increment: material is cut in
// 50 mm steps, so raw dimensions round up to the next multiple.
const CutIncrementMM = 50

var mmPerMeter = decimal.NewFromInt(1000)

// RoundUpToCut rounds a millimeter dimension up to the next multiple of
// the cut increment. Idempotent and monotonic.
func RoundUpToCut(mm int) int {
	if mm <= 0 {
		return 0
	}
	rem := mm % CutIncrementMM
	if rem == 0 {
		return mm
	}
	return mm + CutIncrementMM - rem
}

// Geometry holds the normalized measures shared by every price list.
type Geometry struct {
	// Rounded dimensions in millimeters.
	WidthMM  int
	HeightMM int

	// PerimeterM is the perimeter in linear meters.
	PerimeterM types.Money

	// GridLengthM is the total linear meters of internal bar material.
	GridLengthM types.Money
}

// NormalizeGeometry applies cut rounding and derives the linear measures.
func NormalizeGeometry(in LineInput) Geometry {
	w := RoundUpToCut(in.WidthMM)
	h := RoundUpToCut(in.HeightMM)

	wd := decimal.NewFromInt(int64(w))
	hd := decimal.NewFromInt(int64(h))

	perimeter := wd.Add(wd).Add(hd).Add(hd).Div(mmPerMeter)

	grid := decimal.NewFromInt(int64(in.HorizontalBars)).Mul(wd).
		Add(decimal.NewFromInt(int64(in.VerticalBars)).Mul(hd)).
		Div(mmPerMeter)

	return Geometry{
		WidthMM:     w,
		HeightMM:    h,
		PerimeterM:  perimeter,
		GridLengthM: grid,
	}
}

// SizeTier buckets the perimeter length for surcharge table lookups.
type SizeTier string

const (
	TierS  SizeTier = "S"
	TierM  SizeTier = "M"
	TierL  SizeTier = "L"
	TierXL SizeTier = "XL"
)

var (
	tierSMax = types.MustMoney("2.5")
	tierMMax = types.MustMoney("5.0")
	tierLMax = types.MustMoney("7.5")
)

// TierForPerimeter maps a perimeter (meters) to its size tier.
// Thresholds are stable across price-list versions; only the surcharge
// table they index varies.
func TierForPerimeter(perimeterM types.Money) SizeTier {
	switch {
	case perimeterM.LessThan(tierSMax):
		return TierS
	case perimeterM.LessThan(tierMMax):
		return TierM
	case perimeterM.LessThan(tierLMax):
		return TierL
	default:
		return TierXL
	}
}
