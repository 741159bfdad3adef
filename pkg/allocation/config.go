package allocation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DroppedOrderStatus marks order lines already handled elsewhere; they
// are removed before allocation.
const DroppedOrderStatus = 35

// Config holds the allocation policy knobs
type Config struct {
	// AllowedStatuses is the buffer status allow-list for allocation
	// (units staged for consumption)
	AllowedStatuses []int
	// BlockedPrefixes rejects buffer locations by prefix, case-insensitive
	BlockedPrefixes []string
	// BlockedExact rejects buffer locations by exact name, case-insensitive
	BlockedExact []string
	// AutomatedMarker partitions buffer units into bins (location contains
	// the marker) vs pallets
	AutomatedMarker string
	// NearMissThreshold is the maximum relative overshoot for a pallet to
	// count as a near miss (boundary inclusive)
	NearMissThreshold decimal.Decimal
	// BulkyPrefix marks pick-face locations belonging to the bulky-goods zone
	BulkyPrefix string
	// OverflowMarker marks brand-overflow pick-face locations, also
	// reclassified as bulky
	OverflowMarker string
}

// DefaultConfig returns the production policy
func DefaultConfig() Config {
	return Config{
		AllowedStatuses:   []int{29, 30, 32},
		BlockedPrefixes:   []string{"AA"},
		BlockedExact:      []string{"TRANSIT", "TRANSIT_ERROR", "MISSING", "UT2"},
		AutomatedMarker:   "AUTOSTORE",
		NearMissThreshold: decimal.NewFromFloat(0.15),
		BulkyPrefix:       "SK",
		OverflowMarker:    "BRAND",
	}
}

func (c Config) allowedSet() map[int]bool {
	set := make(map[int]bool, len(c.AllowedStatuses))
	for _, s := range c.AllowedStatuses {
		set[s] = true
	}
	return set
}

// locationBlocked reports whether a buffer location is excluded from
// allocation by the blocked-prefix or blocked-exact rules.
func (c Config) locationBlocked(loc string) bool {
	upper := strings.ToUpper(strings.TrimSpace(loc))
	for _, p := range c.BlockedPrefixes {
		if strings.HasPrefix(upper, strings.ToUpper(p)) {
			return true
		}
	}
	for _, e := range c.BlockedExact {
		if upper == strings.ToUpper(e) {
			return true
		}
	}
	return false
}

// isAutomated reports whether a location belongs to automated storage
func (c Config) isAutomated(loc string) bool {
	return strings.Contains(strings.ToUpper(loc), strings.ToUpper(c.AutomatedMarker))
}

// isBulkyPickFace reports whether a pick-face location routes to the
// bulky-goods zone.
func (c Config) isBulkyPickFace(loc string) bool {
	upper := strings.ToUpper(strings.TrimSpace(loc))
	if upper == "" {
		return false
	}
	return strings.HasPrefix(upper, strings.ToUpper(c.BulkyPrefix)) ||
		strings.Contains(upper, strings.ToUpper(c.OverflowMarker))
}
