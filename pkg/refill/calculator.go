// Package refill computes pick-face replenishment requirements from a
// completed allocation run: how many whole units each article needs at
// its pick face (and bulky zone), and how many FIFO buffer units would
// cover that need.
package refill

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/domain/repositories"
	"github.com/nordicwms/allokera/pkg/infrastructure/repositories/memory"
	"github.com/nordicwms/allokera/pkg/schema"
)

// Config holds the refill policy knobs
type Config struct {
	// AllowedStatuses is the buffer status allow-list for refill; it is
	// narrower than the allocation set since units already past staging
	// cannot replenish a pick face
	AllowedStatuses []int
}

// DefaultConfig returns the production policy
func DefaultConfig() Config {
	return Config{AllowedStatuses: []int{29, 30}}
}

// Calculator derives the two replenishment reports. Calculators are
// stateless between runs; the previous allocation result is always
// passed in explicitly.
type Calculator struct {
	cfg Config
	log *zap.Logger
}

// NewCalculator creates a calculator with the given policy. A nil logger
// disables logging.
func NewCalculator(cfg Config, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{cfg: cfg, log: log}
}

// Input bundles everything one refill computation consumes
type Input struct {
	Allocated []entities.AllocatedLine
	// Buffer is the raw normalized buffer, not the allocation leftovers;
	// the calculator rebuilds its own snapshot under the refill status set
	Buffer *schema.BufferTable
	Stock  []entities.PickFaceStock
	// Backlog maps article to the not-yet-putaway quantity sum
	Backlog map[string]decimal.Decimal
}

// Calculate produces the main-pick/bulky report and the automated-
// storage report. Reports are always non-nil with non-nil row slices.
func (c *Calculator) Calculate(ctx context.Context, in Input) (*entities.RefillReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	index := c.buildIndex(in)
	stockSum, pickFace := aggregateStock(in.Stock)

	report := &entities.RefillReport{
		MainPick:  c.mainPickRows(in, index, stockSum, pickFace),
		AutoStore: c.autoStoreRows(in, index, stockSum, pickFace),
	}

	sort.SliceStable(report.MainPick, func(i, j int) bool {
		if report.MainPick[i].Zone != report.MainPick[j].Zone {
			return report.MainPick[i].Zone < report.MainPick[j].Zone
		}
		return report.MainPick[i].EstimatedUnits > report.MainPick[j].EstimatedUnits
	})
	sort.SliceStable(report.AutoStore, func(i, j int) bool {
		return report.AutoStore[i].EstimatedUnits > report.AutoStore[j].EstimatedUnits
	})

	c.log.Info("refill computed",
		zap.Int("main_pick_rows", len(report.MainPick)),
		zap.Int("autostore_rows", len(report.AutoStore)),
	)
	return report, nil
}

// buildIndex rebuilds the buffer snapshot for refill: the narrower
// status set, minus every unit consumed whole as a HELPALL source.
func (c *Calculator) buildIndex(in Input) repositories.BufferIndex {
	consumed := make(map[string]bool)
	for _, l := range in.Allocated {
		if l.Source == entities.SourceHelpall && l.SourceID != "" {
			consumed[l.SourceID] = true
		}
	}
	allowed := make(map[int]bool, len(c.cfg.AllowedStatuses))
	for _, s := range c.cfg.AllowedStatuses {
		allowed[s] = true
	}
	var units []entities.BufferUnit
	applyStatus := false
	if in.Buffer != nil {
		units = in.Buffer.Units
		applyStatus = in.Buffer.HasStatus
	}
	return memory.NewBufferIndex(units, memory.IndexOptions{
		AllowedStatuses:   allowed,
		ApplyStatusFilter: applyStatus,
		ExcludeSourceIDs:  consumed,
	})
}

// mainPickRows covers HUVUDPLOCK and SKRYMMANDE lines: per article, the
// shortfall after pick-face stock is distributed across zone groups
// proportional to demand, with exact-sum rounding.
func (c *Calculator) mainPickRows(in Input, index repositories.BufferIndex, stockSum map[string]decimal.Decimal, pickFace map[string]string) []entities.RefillRequirement {
	type zoneNeed struct {
		zone entities.Zone
		qty  decimal.Decimal
	}
	demand := make(map[string][]zoneNeed)
	for _, l := range in.Allocated {
		if l.Source != entities.SourceMainPick && l.Source != entities.SourceBulky {
			continue
		}
		zone := entities.ZoneMainPick
		if l.Source == entities.SourceBulky {
			zone = entities.ZoneBulky
		}
		groups := demand[l.Article]
		found := false
		for i := range groups {
			if groups[i].zone == zone {
				groups[i].qty = groups[i].qty.Add(l.Allocated)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, zoneNeed{zone: zone, qty: l.Allocated})
		}
		demand[l.Article] = groups
	}

	rows := make([]entities.RefillRequirement, 0, len(demand))
	for _, article := range sortedKeys(demand) {
		groups := demand[article]
		sort.Slice(groups, func(i, j int) bool { return groups[i].zone < groups[j].zone })

		totalNeed := decimal.Zero
		for _, g := range groups {
			totalNeed = totalNeed.Add(g.qty)
		}
		if !totalNeed.IsPositive() {
			continue
		}
		shortfall := totalNeed.Round(0).Sub(stockSum[article])
		if !shortfall.IsPositive() {
			continue
		}
		shortfallInt := shortfall.IntPart()

		// Distribute the integer shortfall proportional to each zone's
		// share of total demand, rounding each share independently; the
		// rounding remainder goes entirely to the first group so the
		// parts sum exactly to the shortfall.
		parts := make([]int64, len(groups))
		var allocated int64
		for i, g := range groups {
			parts[i] = g.qty.Div(totalNeed).Mul(shortfall).Round(0).IntPart()
			allocated += parts[i]
		}
		parts[0] += shortfallInt - allocated

		units := index.ForArticle(article)
		available := index.TotalAvailable(article)
		for i, g := range groups {
			need := parts[i]
			if need <= 0 {
				continue
			}
			rows = append(rows, entities.RefillRequirement{
				Article:        article,
				Zone:           g.zone,
				Shortfall:      need,
				EstimatedUnits: estimateUnits(units, need),
				Sufficient:     available.GreaterThanOrEqual(decimal.NewFromInt(need)),
				PickFace:       pickFace[article],
				Backlog:        entities.BacklogQty(in.Backlog, article),
			})
		}
	}
	return rows
}

// autoStoreRows covers AUTOSTORE lines with no source unit: lines that
// were promoted by the cross-line pass rather than served from a real
// bin. One row per article, no zone split.
func (c *Calculator) autoStoreRows(in Input, index repositories.BufferIndex, stockSum map[string]decimal.Decimal, pickFace map[string]string) []entities.RefillRequirement {
	demand := make(map[string]decimal.Decimal)
	for _, l := range in.Allocated {
		if l.Source != entities.SourceAutostore || l.SourceID != "" {
			continue
		}
		demand[l.Article] = demand[l.Article].Add(l.Allocated)
	}

	rows := make([]entities.RefillRequirement, 0, len(demand))
	for _, article := range sortedKeys(demand) {
		shortfall := demand[article].Round(0).Sub(stockSum[article])
		if !shortfall.IsPositive() {
			continue
		}
		need := shortfall.IntPart()
		if need <= 0 {
			continue
		}
		units := index.ForArticle(article)
		rows = append(rows, entities.RefillRequirement{
			Article:        article,
			Shortfall:      need,
			EstimatedUnits: estimateUnits(units, need),
			Sufficient:     index.TotalAvailable(article).GreaterThanOrEqual(decimal.NewFromInt(need)),
			PickFace:       pickFace[article],
			Backlog:        entities.BacklogQty(in.Backlog, article),
		})
	}
	return rows
}

// estimateUnits counts how many FIFO-ordered units it takes for the
// running quantity sum to reach the need. An estimate, not a
// reservation: the same units may be counted for several zones.
func estimateUnits(units []entities.BufferUnit, need int64) int {
	remaining := decimal.NewFromInt(need)
	count := 0
	for _, u := range units {
		if !remaining.IsPositive() {
			break
		}
		count++
		remaining = remaining.Sub(u.Quantity)
	}
	return count
}

func aggregateStock(stock []entities.PickFaceStock) (map[string]decimal.Decimal, map[string]string) {
	sums := make(map[string]decimal.Decimal, len(stock))
	locations := make(map[string]string, len(stock))
	for _, s := range stock {
		sums[s.Article] = sums[s.Article].Add(s.Quantity)
		if s.Location != "" {
			if _, ok := locations[s.Article]; !ok {
				locations[s.Article] = s.Location
			}
		}
	}
	return sums, locations
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
