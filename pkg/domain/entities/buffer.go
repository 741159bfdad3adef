package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// farFuture sorts units with an unknown received time after all dated units.
var farFuture = time.Date(2262, time.April, 11, 0, 0, 0, 0, time.UTC)

// BufferUnit represents a single stock unit in the buffer: a manually
// stored pallet or an automated-storage bin, distinguished by location.
type BufferUnit struct {
	Article    string
	Quantity   decimal.Decimal
	Location   string
	ReceivedAt *time.Time
	SourceID   string
	StatusCode *int
}

// ReceivedOrder returns the FIFO sort key for the unit. Units without a
// received timestamp sort last.
func (u BufferUnit) ReceivedOrder() time.Time {
	if u.ReceivedAt == nil {
		return farFuture
	}
	return *u.ReceivedAt
}

// StatusIn reports whether the unit's status code is in the allowed set.
// Units without a parsable status are never in the set.
func (u BufferUnit) StatusIn(allowed map[int]bool) bool {
	return u.StatusCode != nil && allowed[*u.StatusCode]
}
