package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

// BufferIndex provides FIFO-ordered, per-article access to a snapshot of
// remaining buffer stock. Used by the refill calculator to estimate how
// many buffer units cover a shortfall; reads never reserve anything.
type BufferIndex interface {
	// ForArticle returns the article's remaining units in FIFO order
	ForArticle(article string) []entities.BufferUnit
	// TotalAvailable returns the summed remaining quantity for an article
	TotalAvailable(article string) decimal.Decimal
}
