package refill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

func TestAnnotateJoinsByArticle(t *testing.T) {
	report := &entities.RefillReport{
		MainPick: []entities.RefillRequirement{
			{Article: "ART-1", Shortfall: 5},
			{Article: "ART-2", Shortfall: 3},
		},
		AutoStore: []entities.RefillRequirement{
			{Article: "ART-1", Shortfall: 2},
		},
	}
	metrics := []entities.ArticleMetrics{
		{Article: "ART-1", PickDays: 12, AvgPerPickDay: decimal.NewFromInt(40)},
	}

	Annotate(report, metrics)

	require.NotNil(t, report.MainPick[0].Metrics)
	assert.Equal(t, 12, report.MainPick[0].Metrics.PickDays)
	assert.Nil(t, report.MainPick[1].Metrics, "articles without metrics stay unannotated")
	require.NotNil(t, report.AutoStore[0].Metrics)
}

func TestAnnotateNoOpOnEmptyMetrics(t *testing.T) {
	report := &entities.RefillReport{
		MainPick: []entities.RefillRequirement{{Article: "ART-1"}},
	}
	Annotate(report, nil)
	assert.Nil(t, report.MainPick[0].Metrics)

	Annotate(nil, []entities.ArticleMetrics{{Article: "ART-1"}})
}
