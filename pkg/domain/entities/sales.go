package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickEvent is a single pick-log row: an article picked on a date
type PickEvent struct {
	Article  string
	Quantity decimal.Decimal
	PickedAt time.Time
}

// ArticleMetrics carries per-article sales-velocity figures merged into
// the refill reports by the annotation step.
type ArticleMetrics struct {
	Article string
	// PickDays is the number of distinct days with positive picked volume
	PickDays int
	// AvgPerPickDay is the mean picked quantity over those days
	AvgPerPickDay decimal.Decimal
	// DaysSinceLast counts days from the most recent pick to the
	// reference date of the computation
	DaysSinceLast int
	PickFace      string
	// AvgUnitsPerSource is the robust mean quantity per buffer unit
	AvgUnitsPerSource decimal.Decimal
}
