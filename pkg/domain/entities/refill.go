package entities

import (
	"github.com/shopspring/decimal"
)

// PickFaceStock is the current stock level at an article's pick-face
// location, aggregated per article.
type PickFaceStock struct {
	Article  string
	Quantity decimal.Decimal
	Location string
}

// RefillRequirement is one row of a replenishment report: the whole-unit
// shortfall at the pick face for an article (and zone, in the main-pick
// report) after current pick-face stock is subtracted.
type RefillRequirement struct {
	Article string
	// Zone is set in the main-pick report only
	Zone           Zone
	Shortfall      int64
	EstimatedUnits int
	Sufficient     bool
	PickFace       string
	Backlog        int64
	// Metrics is populated by the annotation step when sales-velocity
	// metrics are supplied; nil otherwise.
	Metrics *ArticleMetrics
}

// RefillReport holds the two replenishment reports produced per run
type RefillReport struct {
	MainPick  []RefillRequirement
	AutoStore []RefillRequirement
}

// BacklogQty returns the rounded backlog quantity for an article from a
// per-article backlog sum map.
func BacklogQty(backlog map[string]decimal.Decimal, article string) int64 {
	q, ok := backlog[article]
	if !ok {
		return 0
	}
	return q.Round(0).IntPart()
}
