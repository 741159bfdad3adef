package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies which consumption stage produced an allocated line
type SourceType string

const (
	// SourceHelpall is whole-pallet consumption from the manual buffer
	SourceHelpall SourceType = "HELPALL"
	// SourceAutostore is (splittable) consumption from automated-storage bins
	SourceAutostore SourceType = "AUTOSTORE"
	// SourceMainPick is the unconstrained pick-face fallback; it never fails
	SourceMainPick SourceType = "HUVUDPLOCK"
	// SourceBulky marks fallback lines reclassified to the bulky-goods zone
	SourceBulky SourceType = "SKRYMMANDE"
)

// Zone is the computed warehouse zone for an allocated line
type Zone string

const (
	ZoneHelpall   Zone = "H"
	ZoneAutostore Zone = "R"
	ZoneMainPick  Zone = "A"
	ZoneBulky     Zone = "S"
)

// Zone returns the warehouse zone associated with the source type
func (s SourceType) Zone() Zone {
	switch s {
	case SourceHelpall:
		return ZoneHelpall
	case SourceAutostore:
		return ZoneAutostore
	case SourceMainPick:
		return ZoneMainPick
	case SourceBulky:
		return ZoneBulky
	default:
		return ""
	}
}

// AllocatedLine is an order line bound to a concrete stock source. One
// order line may produce several allocated lines; their quantities sum
// to the original need.
type AllocatedLine struct {
	OrderLine
	Zone           Zone
	Source         SourceType
	SourceID       string
	SourceLocation string
	Allocated      decimal.Decimal
}

// NearMissRecord documents a pallet that was slightly too large to be
// consumed whole for the remaining need of an order line.
type NearMissRecord struct {
	Article        string
	OrderID        string
	LineID         string
	SourceID       string
	SourceLocation string
	ReceivedAt     *time.Time
	NeedAtTime     decimal.Decimal
	PalletQty      decimal.Decimal
	Difference     decimal.Decimal
	PercentDiff    decimal.Decimal
	Reason         string
	// Mattered is set after the full order line is processed: true when
	// the line fell through to AUTOSTORE or HUVUDPLOCK.
	Mattered bool
}
