// Package sales derives per-article pick-velocity metrics from the pick
// log. The metrics are advisory: they annotate the refill reports but
// never change what gets allocated or refilled.
package sales

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

var pointFive = decimal.NewFromFloat(0.5)

// Compute aggregates pick events into per-article metrics. Pick-face
// locations come from the stock snapshot, average units per source from
// the buffer snapshot. today anchors the days-since-last-pick figure;
// results come back sorted by article.
func Compute(events []entities.PickEvent, stock []entities.PickFaceStock, buffer []entities.BufferUnit, today time.Time) []entities.ArticleMetrics {
	type daily map[time.Time]decimal.Decimal
	byArticle := make(map[string]daily)
	lastPick := make(map[string]time.Time)
	for _, ev := range events {
		if ev.Article == "" {
			continue
		}
		day := ev.PickedAt.Truncate(24 * time.Hour)
		d := byArticle[ev.Article]
		if d == nil {
			d = make(daily)
			byArticle[ev.Article] = d
		}
		d[day] = d[day].Add(ev.Quantity)
		if day.After(lastPick[ev.Article]) {
			lastPick[ev.Article] = day
		}
	}

	pickFace := make(map[string]string, len(stock))
	for _, s := range stock {
		if s.Article == "" || s.Location == "" {
			continue
		}
		if _, ok := pickFace[s.Article]; !ok {
			pickFace[s.Article] = s.Location
		}
	}

	unitQty := make(map[string][]decimal.Decimal)
	for _, u := range buffer {
		if u.Quantity.IsPositive() {
			unitQty[u.Article] = append(unitQty[u.Article], u.Quantity)
		}
	}

	today = today.Truncate(24 * time.Hour)
	out := make([]entities.ArticleMetrics, 0, len(byArticle))
	for article, days := range byArticle {
		total := decimal.Zero
		count := 0
		for _, sum := range days {
			if sum.IsPositive() {
				total = total.Add(sum)
				count++
			}
		}
		if count == 0 {
			continue
		}
		out = append(out, entities.ArticleMetrics{
			Article:           article,
			PickDays:          count,
			AvgPerPickDay:     total.Div(decimal.NewFromInt(int64(count))).Round(2),
			DaysSinceLast:     int(today.Sub(lastPick[article]).Hours() / 24),
			PickFace:          pickFace[article],
			AvgUnitsPerSource: robustMean(unitQty[article]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Article < out[j].Article })
	return out
}

// robustMean averages the positive quantities after dropping extreme
// low outliers, anything below half the median. A degenerate median
// falls back to the plain mean.
func robustMean(vals []decimal.Decimal) decimal.Decimal {
	if len(vals) == 0 {
		return decimal.Zero
	}
	med := median(vals)
	if !med.IsPositive() {
		return mean(vals).Round(2)
	}
	cutoff := med.Mul(pointFive)
	filtered := vals[:0:0]
	for _, v := range vals {
		if v.GreaterThanOrEqual(cutoff) {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		filtered = vals
	}
	return mean(filtered).Round(2)
}

func mean(vals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(vals))))
}

func median(vals []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(vals))
	copy(sorted, vals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
