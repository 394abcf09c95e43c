package pricing

import (
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

func TestRoundUpToCut(t *testing.T) {
	tests := []struct {
		name string
		mm   int
		want int
	}{
		{"zero", 0, 0},
		{"negative clamps to zero", -120, 0},
		{"exact multiple unchanged", 1000, 1000},
		{"one over rounds up", 1001, 1050},
		{"one under rounds up", 999, 1000},
		{"small value", 1, 50},
		{"just below increment", 49, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUpToCut(tt.mm); got != tt.want {
				t.Errorf("RoundUpToCut(%d) = %d, want %d", tt.mm, got, tt.want)
			}
		})
	}
}

func TestRoundUpToCutIdempotent(t *testing.T) {
	for mm := 0; mm <= 3000; mm += 7 {
		once := RoundUpToCut(mm)
		if twice := RoundUpToCut(once); twice != once {
			t.Fatalf("not idempotent at %d: round=%d, round(round)=%d", mm, once, twice)
		}
	}
}

func TestRoundUpToCutMonotonic(t *testing.T) {
	prev := RoundUpToCut(0)
	for mm := 1; mm <= 3000; mm++ {
		cur := RoundUpToCut(mm)
		if cur < prev {
			t.Fatalf("not monotonic: round(%d)=%d < round(%d)=%d", mm, cur, mm-1, prev)
		}
		prev = cur
	}
}

func TestNormalizeGeometry(t *testing.T) {
	in := LineInput{
		WidthMM:        980,
		HeightMM:       510,
		HorizontalBars: 2,
		VerticalBars:   1,
	}
	geo := NormalizeGeometry(in)

	if geo.WidthMM != 1000 || geo.HeightMM != 550 {
		t.Fatalf("rounded dims = %dx%d, want 1000x550", geo.WidthMM, geo.HeightMM)
	}
	// perimeter = (2*1000 + 2*550)/1000 = 3.1
	if want := types.MustMoney("3.1"); !geo.PerimeterM.Equal(want) {
		t.Errorf("PerimeterM = %s, want %s", geo.PerimeterM, want)
	}
	// grid = (2*1000 + 1*550)/1000 = 2.55
	if want := types.MustMoney("2.55"); !geo.GridLengthM.Equal(want) {
		t.Errorf("GridLengthM = %s, want %s", geo.GridLengthM, want)
	}
}

func TestTierForPerimeter(t *testing.T) {
	tests := []struct {
		perimeter string
		want      SizeTier
	}{
		{"0", TierS},
		{"2.49", TierS},
		{"2.5", TierM},
		{"4.99", TierM},
		{"5.0", TierL},
		{"7.49", TierL},
		{"7.5", TierXL},
		{"12", TierXL},
	}
	for _, tt := range tests {
		if got := TierForPerimeter(types.MustMoney(tt.perimeter)); got != tt.want {
			t.Errorf("TierForPerimeter(%s) = %s, want %s", tt.perimeter, got, tt.want)
		}
	}
}
