package pricing

import "strings"

// Version is the closed set of price-list versions. The zero value is
// List2026A: unrecognized version strings deliberately price with the
// current default rather than failing.
type Version int

const (
	// List2026A is the current default price list.
	List2026A Version = iota
	// List2025A is the legacy 2025 price list.
	List2025A
	// List2025X is the legacy 2025 variant with the flat +1.00 base surcharge.
	List2025X
)

// DefaultListMode is the customer override value meaning "follow the
// global default".
const DefaultListMode = "default"

// ParseVersion maps a stored price-list identifier to a Version.
// Anything unrecognized, including future identifiers, resolves to
// List2026A; stored quotes depend on that fallback.
func ParseVersion(s string) Version {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2025-a":
		return List2025A
	case "2025x", "2025-x":
		return List2025X
	default:
		return List2026A
	}
}

// String returns the canonical identifier for the version.
func (v Version) String() string {
	switch v {
	case List2025A:
		return "2025-a"
	case List2025X:
		return "2025x"
	default:
		return "2026-a"
	}
}
