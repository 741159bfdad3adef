package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

func pick(article string, qty int64, day int) entities.PickEvent {
	return entities.PickEvent{
		Article:  article,
		Quantity: decimal.NewFromInt(qty),
		PickedAt: time.Date(2025, 11, day, 14, 30, 0, 0, time.UTC),
	}
}

func TestComputePickDaysAndAverage(t *testing.T) {
	events := []entities.PickEvent{
		pick("ART-1", 10, 3),
		pick("ART-1", 20, 3), // same day, sums to 30
		pick("ART-1", 10, 5),
	}
	today := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	out := Compute(events, nil, nil, today)

	require.Len(t, out, 1)
	m := out[0]
	assert.Equal(t, 2, m.PickDays)
	assert.True(t, m.AvgPerPickDay.Equal(decimal.NewFromInt(20)), "got %s", m.AvgPerPickDay)
	assert.Equal(t, 5, m.DaysSinceLast)
}

func TestComputeSkipsZeroVolumeDays(t *testing.T) {
	events := []entities.PickEvent{
		pick("ART-1", 0, 3),
		pick("ART-1", 12, 4),
	}
	out := Compute(events, nil, nil, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].PickDays)
}

func TestComputeArticleWithOnlyZeroDaysIsDropped(t *testing.T) {
	events := []entities.PickEvent{pick("ART-1", 0, 3)}
	out := Compute(events, nil, nil, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, out)
}

func TestComputePickFaceFromStock(t *testing.T) {
	events := []entities.PickEvent{pick("ART-1", 5, 3)}
	stock := []entities.PickFaceStock{
		{Article: "ART-1", Quantity: decimal.NewFromInt(4), Location: "E02-01"},
		{Article: "ART-1", Quantity: decimal.NewFromInt(1), Location: "E09-09"},
	}
	out := Compute(events, stock, nil, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, out, 1)
	assert.Equal(t, "E02-01", out[0].PickFace, "first non-empty location wins")
}

func TestComputeRobustUnitsPerSource(t *testing.T) {
	events := []entities.PickEvent{pick("ART-1", 5, 3)}
	buffer := []entities.BufferUnit{
		{Article: "ART-1", Quantity: decimal.NewFromInt(100)},
		{Article: "ART-1", Quantity: decimal.NewFromInt(100)},
		{Article: "ART-1", Quantity: decimal.NewFromInt(2)}, // below half the median, dropped
	}
	out := Compute(events, nil, buffer, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, out, 1)
	assert.True(t, out[0].AvgUnitsPerSource.Equal(decimal.NewFromInt(100)),
		"got %s", out[0].AvgUnitsPerSource)
}

func TestComputeSortedByArticle(t *testing.T) {
	events := []entities.PickEvent{
		pick("ART-B", 5, 3),
		pick("ART-A", 5, 3),
	}
	out := Compute(events, nil, nil, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, out, 2)
	assert.Equal(t, "ART-A", out[0].Article)
	assert.Equal(t, "ART-B", out[1].Article)
}
