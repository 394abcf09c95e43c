package pricing

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		h, v int
		want Complexity
	}{
		{"no bars", 0, 0, ComplexityNone},
		{"both axes", 1, 1, ComplexityCross},
		{"dense lattice", 3, 2, ComplexityCross},
		{"multiple vertical only", 0, 2, ComplexityParallel},
		{"multiple horizontal only", 2, 0, ComplexityParallel},
		{"one vertical", 0, 1, ComplexitySingle},
		{"one horizontal", 1, 0, ComplexitySingle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.h, tt.v); got != tt.want {
				t.Errorf("Classify(%d, %d) = %s, want %s", tt.h, tt.v, got, tt.want)
			}
		})
	}
}

func TestSpacerAbsent(t *testing.T) {
	for _, s := range []string{"", "  ", "NONE", "none", "NESSUNO", "nessuno "} {
		if !SpacerAbsent(s) {
			t.Errorf("SpacerAbsent(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"ALLUMINIO", "BORDO CALDO", "FIBRA", "X"} {
		if SpacerAbsent(s) {
			t.Errorf("SpacerAbsent(%q) = true, want false", s)
		}
	}
}

func TestClassifyForVersionOverride(t *testing.T) {
	noSpacerHorizontal := LineInput{HorizontalBars: 2, VerticalBars: 0, SpacerType: ""}

	// Legacy lists reclassify horizontal-only/no-spacer lines as CROSS.
	for _, v := range []Version{List2025A, List2025X} {
		if got := classifyForVersion(noSpacerHorizontal, strategyConfigs[v]); got != ComplexityCross {
			t.Errorf("%s: classification = %s, want CROSS", v, got)
		}
	}

	// The current list keeps the base rule.
	if got := classifyForVersion(noSpacerHorizontal, strategyConfigs[List2026A]); got != ComplexityParallel {
		t.Errorf("2026-a: classification = %s, want PARALLEL", got)
	}

	// Override needs V == 0: a lattice stays a lattice, a vertical bar
	// keeps its own class.
	withVertical := LineInput{HorizontalBars: 0, VerticalBars: 1, SpacerType: ""}
	if got := classifyForVersion(withVertical, strategyConfigs[List2025A]); got != ComplexitySingle {
		t.Errorf("vertical-only with override config = %s, want SINGLE", got)
	}

	// Override needs an absent spacer.
	withSpacer := LineInput{HorizontalBars: 2, VerticalBars: 0, SpacerType: "ALLUMINIO"}
	if got := classifyForVersion(withSpacer, strategyConfigs[List2025A]); got != ComplexityParallel {
		t.Errorf("horizontal-only with spacer = %s, want PARALLEL", got)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want Version
	}{
		{"2026-a", List2026A},
		{"2025-a", List2025A},
		{"2025x", List2025X},
		{"2025-x", List2025X},
		{" 2025X ", List2025X},
		{"bogus", List2026A},
		{"", List2026A},
		{"default", List2026A},
	}
	for _, tt := range tests {
		if got := ParseVersion(tt.raw); got != tt.want {
			t.Errorf("ParseVersion(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
