package quote

import "github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for quotes.
	// Quote numbers end up on customer-facing documents, gaps are
	// acceptable but reordering is not, so numbering is strict.
	NumeratorStrategy = numerator.StrategyStrict
)
