// Package allocation implements the tiered consumption policy that
// matches a batch of order lines against available buffer stock: whole
// pallets first (HELPALL), automated-storage bins second (AUTOSTORE),
// and the pick face as the fallback that never fails (HUVUDPLOCK).
package allocation

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/schema"
)

const nearMissReason = "Pallen var ≤15% större än återstående behov (kan ej brytas)"

var hundred = decimal.NewFromInt(100)

// Engine runs the allocation policy over one snapshot of orders and
// buffer stock. Engines are stateless between runs.
type Engine struct {
	cfg Config
	log *zap.Logger
}

// NewEngine creates an engine with the given policy. A nil logger
// disables logging.
func NewEngine(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}
}

// Result is the output of one allocation run
type Result struct {
	Lines      []entities.AllocatedLine
	NearMisses []entities.NearMissRecord
	// DroppedOrderLines counts order lines removed for carrying the
	// dropped status code
	DroppedOrderLines int
	// RejectedByStatus, RejectedByLocation and RejectedByQuantity count
	// buffer units excluded before queue building
	RejectedByStatus   int
	RejectedByLocation int
	RejectedByQuantity int
}

// Allocate matches order lines against the buffer, in input order. Each
// line with a positive need is satisfied by whole pallets, then bins,
// then the pick-face fallback; the allocated quantities always sum to
// the original need. Inputs are never mutated.
func (e *Engine) Allocate(ctx context.Context, orders *schema.Orders, buffer *schema.BufferTable) (*Result, error) {
	result := &Result{
		Lines:      make([]entities.AllocatedLine, 0, len(orders.Lines)),
		NearMisses: make([]entities.NearMissRecord, 0),
	}

	pallets, bins := e.partition(buffer, result)

	for _, line := range orders.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line.StatusEquals(DroppedOrderStatus) {
			result.DroppedOrderLines++
			continue
		}
		need := line.Quantity
		if !need.IsPositive() {
			continue
		}

		firstNearMiss := len(result.NearMisses)
		usedFallback := false

		// HELPALL: consume whole pallets from the head of the queue. The
		// first pallet larger than the remaining need ends the scan; it
		// stays queued for later lines, recorded as a near miss when it
		// overshoots by at most the threshold.
		pq := pallets[line.Article]
		for head := pq.head(); head != nil && need.IsPositive(); head = pq.head() {
			if head.Quantity.LessThanOrEqual(need) {
				result.Lines = append(result.Lines, sourcedLine(line, entities.SourceHelpall, *head, head.Quantity))
				need = need.Sub(head.Quantity)
				pq.drop()
				continue
			}
			diff := head.Quantity.Sub(need)
			if pct := diff.Div(need); pct.LessThanOrEqual(e.cfg.NearMissThreshold) {
				result.NearMisses = append(result.NearMisses, entities.NearMissRecord{
					Article:        line.Article,
					OrderID:        line.OrderID,
					LineID:         line.LineID,
					SourceID:       head.SourceID,
					SourceLocation: head.Location,
					ReceivedAt:     head.ReceivedAt,
					NeedAtTime:     need,
					PalletQty:      head.Quantity,
					Difference:     diff,
					PercentDiff:    pct.Mul(hundred),
					Reason:         nearMissReason,
				})
			}
			break
		}

		// AUTOSTORE: bins are splittable; a partially consumed bin keeps
		// its residual quantity at the head of the queue.
		bq := bins[line.Article]
		for head := bq.head(); head != nil && need.IsPositive(); head = bq.head() {
			take := decimal.Min(head.Quantity, need)
			if take.IsPositive() {
				result.Lines = append(result.Lines, sourcedLine(line, entities.SourceAutostore, *head, take))
				usedFallback = true
			}
			head.Quantity = head.Quantity.Sub(take)
			need = need.Sub(take)
			if !head.Quantity.IsPositive() {
				bq.drop()
			}
		}

		// HUVUDPLOCK: unconstrained fallback, never fails
		if need.IsPositive() {
			result.Lines = append(result.Lines, fallbackLine(line, need))
			usedFallback = true
		}

		for i := firstNearMiss; i < len(result.NearMisses); i++ {
			result.NearMisses[i].Mattered = usedFallback
		}
	}

	e.promoteToAutostore(result)

	e.log.Info("allocation complete",
		zap.Int("allocated_lines", len(result.Lines)),
		zap.Int("near_misses", len(result.NearMisses)),
		zap.Int("dropped_order_lines", result.DroppedOrderLines),
		zap.Int("rejected_by_status", result.RejectedByStatus),
		zap.Int("rejected_by_location", result.RejectedByLocation),
		zap.Int("rejected_by_quantity", result.RejectedByQuantity),
	)
	return result, nil
}

// partition filters the buffer and splits it into per-article pallet and
// bin queues. Status filtering applies only when the input resolved a
// status column; units without a parsable code then fail the allow-list.
func (e *Engine) partition(buffer *schema.BufferTable, result *Result) (pallets, bins map[string]*unitQueue) {
	allowed := e.cfg.allowedSet()
	var palletUnits, binUnits []entities.BufferUnit
	for _, u := range buffer.Units {
		if buffer.HasStatus && !u.StatusIn(allowed) {
			result.RejectedByStatus++
			continue
		}
		if e.cfg.locationBlocked(u.Location) {
			result.RejectedByLocation++
			continue
		}
		if !u.Quantity.IsPositive() {
			result.RejectedByQuantity++
			continue
		}
		if e.cfg.isAutomated(u.Location) {
			binUnits = append(binUnits, u)
		} else {
			palletUnits = append(palletUnits, u)
		}
	}
	return buildQueues(palletUnits), buildQueues(binUnits)
}

// promoteToAutostore applies the cross-line policy: once any line of an
// article is served from automated storage, every other non-HELPALL line
// of that article routes there too, including lines emitted earlier.
func (e *Engine) promoteToAutostore(result *Result) {
	autoArticles := make(map[string]bool)
	for _, l := range result.Lines {
		if l.Source == entities.SourceAutostore {
			autoArticles[l.Article] = true
		}
	}
	if len(autoArticles) == 0 {
		return
	}
	promoted := 0
	for i := range result.Lines {
		l := &result.Lines[i]
		if l.Source == entities.SourceHelpall || l.Source == entities.SourceAutostore {
			continue
		}
		if autoArticles[l.Article] {
			l.Source = entities.SourceAutostore
			l.Zone = entities.ZoneAutostore
			promoted++
		}
	}
	if promoted > 0 {
		e.log.Debug("promoted fallback lines to automated storage", zap.Int("lines", promoted))
	}
}

func sourcedLine(line entities.OrderLine, source entities.SourceType, unit entities.BufferUnit, qty decimal.Decimal) entities.AllocatedLine {
	return entities.AllocatedLine{
		OrderLine:      line,
		Zone:           source.Zone(),
		Source:         source,
		SourceID:       unit.SourceID,
		SourceLocation: unit.Location,
		Allocated:      qty,
	}
}

func fallbackLine(line entities.OrderLine, qty decimal.Decimal) entities.AllocatedLine {
	return entities.AllocatedLine{
		OrderLine: line,
		Zone:      entities.ZoneMainPick,
		Source:    entities.SourceMainPick,
		Allocated: qty,
	}
}
