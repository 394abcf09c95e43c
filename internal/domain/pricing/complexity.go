package pricing

import "strings"

// Complexity classifies the internal grid topology; it selects which
// pricing formula applies.
type Complexity int

const (
	// ComplexityNone: no internal grid. No grid formula is defined for a
	// bare frame; such a line prices to zero here.
	ComplexityNone Complexity = 0
	// ComplexityCross: bars on both axes (a lattice).
	ComplexityCross Complexity = 1
	// ComplexityParallel: multiple bars on a single axis.
	ComplexityParallel Complexity = 2
	// ComplexitySingle: exactly one bar.
	ComplexitySingle Complexity = 3
)

// String returns the classification name.
func (c Complexity) String() string {
	switch c {
	case ComplexityCross:
		return "CROSS"
	case ComplexityParallel:
		return "PARALLEL"
	case ComplexitySingle:
		return "SINGLE"
	default:
		return "NONE"
	}
}

// Classify derives the complexity from the bar counts.
func Classify(horizontal, vertical int) Complexity {
	switch {
	case horizontal > 0 && vertical > 0:
		return ComplexityCross
	case (vertical > 1 && horizontal == 0) || (horizontal > 1 && vertical == 0):
		return ComplexityParallel
	case (vertical == 1 && horizontal == 0) || (horizontal == 1 && vertical == 0):
		return ComplexitySingle
	default:
		return ComplexityNone
	}
}

// SpacerAbsent reports whether the line carries no perimeter spacer.
// The legacy data used "NESSUNO"; newer records use an empty string or
// "NONE".
func SpacerAbsent(spacerType string) bool {
	switch strings.ToUpper(strings.TrimSpace(spacerType)) {
	case "", "NONE", "NESSUNO":
		return true
	}
	return false
}

// classifyForVersion applies the base rule plus the legacy override:
// on the 2025 lists, horizontal-only bars with no perimeter spacer are
// priced at the unsurcharged cross rate. This is confirmed intended
// behavior, not a bug; preserve it exactly.
func classifyForVersion(in LineInput, cfg strategyConfig) Complexity {
	c := Classify(in.HorizontalBars, in.VerticalBars)

	if cfg.forceCrossWithoutSpacer &&
		SpacerAbsent(in.SpacerType) &&
		in.VerticalBars == 0 && in.HorizontalBars >= 1 {
		return ComplexityCross
	}

	return c
}
