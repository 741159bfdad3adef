// Package memory holds the in-memory snapshot structures backing a
// single batch run. Nothing here survives between runs.
package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/domain/repositories"
)

// BufferIndex is an immutable, per-article FIFO view of buffer units
type BufferIndex struct {
	byArticle map[string][]entities.BufferUnit
}

// Verify interface compliance
var _ repositories.BufferIndex = (*BufferIndex)(nil)

// IndexOptions filters the snapshot while building the index
type IndexOptions struct {
	// AllowedStatuses drops units whose status code is not in the set;
	// ignored when ApplyStatusFilter is false (no status column resolved)
	AllowedStatuses   map[int]bool
	ApplyStatusFilter bool
	// ExcludeSourceIDs drops units already consumed elsewhere, so they
	// are not counted twice
	ExcludeSourceIDs map[string]bool
}

// NewBufferIndex builds a FIFO index over the given units. Units are
// ordered per article by received timestamp ascending, missing
// timestamps last, source id as tiebreak.
func NewBufferIndex(units []entities.BufferUnit, opts IndexOptions) *BufferIndex {
	byArticle := make(map[string][]entities.BufferUnit)
	for _, u := range units {
		if opts.ApplyStatusFilter && !u.StatusIn(opts.AllowedStatuses) {
			continue
		}
		if opts.ExcludeSourceIDs[u.SourceID] {
			continue
		}
		byArticle[u.Article] = append(byArticle[u.Article], u)
	}
	for _, list := range byArticle {
		sort.SliceStable(list, func(i, j int) bool {
			ti, tj := list[i].ReceivedOrder(), list[j].ReceivedOrder()
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return list[i].SourceID < list[j].SourceID
		})
	}
	return &BufferIndex{byArticle: byArticle}
}

// ForArticle returns the article's units in FIFO order
func (ix *BufferIndex) ForArticle(article string) []entities.BufferUnit {
	return ix.byArticle[article]
}

// TotalAvailable returns the summed quantity over the article's units
func (ix *BufferIndex) TotalAvailable(article string) decimal.Decimal {
	total := decimal.Zero
	for _, u := range ix.byArticle[article] {
		total = total.Add(u.Quantity)
	}
	return total
}
