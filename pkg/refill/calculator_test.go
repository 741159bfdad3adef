package refill

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/schema"
)

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(DefaultConfig(), nil)
}

func mainPickLine(article string, qty int64) entities.AllocatedLine {
	return entities.AllocatedLine{
		OrderLine: entities.OrderLine{Article: article, Quantity: decimal.NewFromInt(qty)},
		Zone:      entities.ZoneMainPick,
		Source:    entities.SourceMainPick,
		Allocated: decimal.NewFromInt(qty),
	}
}

func bulkyLine(article string, qty int64) entities.AllocatedLine {
	l := mainPickLine(article, qty)
	l.Zone = entities.ZoneBulky
	l.Source = entities.SourceBulky
	return l
}

func promotedLine(article string, qty int64) entities.AllocatedLine {
	l := mainPickLine(article, qty)
	l.Zone = entities.ZoneAutostore
	l.Source = entities.SourceAutostore
	l.SourceID = ""
	return l
}

func refillUnit(article string, qty int64, id string, receivedDay int, status int) entities.BufferUnit {
	at := time.Date(2025, 11, receivedDay, 8, 0, 0, 0, time.UTC)
	return entities.BufferUnit{
		Article:    article,
		Quantity:   decimal.NewFromInt(qty),
		Location:   "B01-01",
		ReceivedAt: &at,
		SourceID:   id,
		StatusCode: &status,
	}
}

func bufferWith(units ...entities.BufferUnit) *schema.BufferTable {
	return &schema.BufferTable{Units: units, HasStatus: true}
}

func TestCalculateProportionalDistribution(t *testing.T) {
	// Demand 7 in zone A and 3 in zone S, stock 2: shortfall 8 splits
	// 5.6/2.4, rounds to 6/2, remainder 0.
	in := Input{
		Allocated: []entities.AllocatedLine{
			mainPickLine("ART-1", 7),
			bulkyLine("ART-1", 3),
		},
		Buffer: bufferWith(refillUnit("ART-1", 20, "P-1", 1, 30)),
		Stock: []entities.PickFaceStock{
			{Article: "ART-1", Quantity: decimal.NewFromInt(2), Location: "E01-01"},
		},
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 2)
	var total int64
	for _, r := range report.MainPick {
		total += r.Shortfall
	}
	assert.EqualValues(t, 8, total, "parts must sum exactly to the shortfall")

	assert.Equal(t, entities.ZoneMainPick, report.MainPick[0].Zone)
	assert.EqualValues(t, 6, report.MainPick[0].Shortfall)
	assert.Equal(t, entities.ZoneBulky, report.MainPick[1].Zone)
	assert.EqualValues(t, 2, report.MainPick[1].Shortfall)
}

func TestCalculateRemainderGoesToFirstZone(t *testing.T) {
	// Demand 5 + 5, stock 3: shortfall 7, shares 3.5/3.5 round to 4/4,
	// remainder -1 lands on the first (zone A) group.
	in := Input{
		Allocated: []entities.AllocatedLine{
			mainPickLine("ART-1", 5),
			bulkyLine("ART-1", 5),
		},
		Buffer: bufferWith(refillUnit("ART-1", 20, "P-1", 1, 30)),
		Stock: []entities.PickFaceStock{
			{Article: "ART-1", Quantity: decimal.NewFromInt(3), Location: "E01-01"},
		},
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 2)
	assert.EqualValues(t, 3, report.MainPick[0].Shortfall)
	assert.EqualValues(t, 4, report.MainPick[1].Shortfall)
	assert.EqualValues(t, 7, report.MainPick[0].Shortfall+report.MainPick[1].Shortfall)
}

func TestCalculateSkipsCoveredArticles(t *testing.T) {
	in := Input{
		Allocated: []entities.AllocatedLine{mainPickLine("ART-1", 5)},
		Buffer:    bufferWith(),
		Stock: []entities.PickFaceStock{
			{Article: "ART-1", Quantity: decimal.NewFromInt(10), Location: "E01-01"},
		},
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, report.MainPick)
	assert.NotNil(t, report.MainPick)
}

func TestCalculateFIFOUnitEstimate(t *testing.T) {
	in := Input{
		Allocated: []entities.AllocatedLine{mainPickLine("ART-1", 25)},
		Buffer: bufferWith(
			refillUnit("ART-1", 10, "P-1", 1, 30),
			refillUnit("ART-1", 10, "P-2", 2, 30),
			refillUnit("ART-1", 10, "P-3", 3, 30),
		),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 1)
	r := report.MainPick[0]
	assert.EqualValues(t, 25, r.Shortfall)
	assert.Equal(t, 3, r.EstimatedUnits, "10+10 does not reach 25, the third unit is needed")
	assert.True(t, r.Sufficient)
}

func TestCalculateInsufficientBuffer(t *testing.T) {
	in := Input{
		Allocated: []entities.AllocatedLine{mainPickLine("ART-1", 25)},
		Buffer:    bufferWith(refillUnit("ART-1", 10, "P-1", 1, 30)),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, report.MainPick, 1)
	assert.False(t, report.MainPick[0].Sufficient)
}

func TestCalculateExcludesConsumedHelpallUnits(t *testing.T) {
	helpall := entities.AllocatedLine{
		OrderLine: entities.OrderLine{Article: "ART-1", Quantity: decimal.NewFromInt(10)},
		Zone:      entities.ZoneHelpall,
		Source:    entities.SourceHelpall,
		SourceID:  "P-USED",
		Allocated: decimal.NewFromInt(10),
	}
	in := Input{
		Allocated: []entities.AllocatedLine{helpall, mainPickLine("ART-1", 10)},
		Buffer: bufferWith(
			refillUnit("ART-1", 10, "P-USED", 1, 30),
			refillUnit("ART-1", 10, "P-FREE", 2, 30),
		),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 1)
	r := report.MainPick[0]
	assert.Equal(t, 1, r.EstimatedUnits)
	assert.True(t, r.Sufficient, "the free unit alone covers the need")
}

func TestCalculateRefillStatusSetIsNarrower(t *testing.T) {
	// Status 32 is allocatable but not refillable
	in := Input{
		Allocated: []entities.AllocatedLine{mainPickLine("ART-1", 10)},
		Buffer:    bufferWith(refillUnit("ART-1", 50, "P-32", 1, 32)),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, report.MainPick, 1)
	assert.False(t, report.MainPick[0].Sufficient)
	assert.Equal(t, 0, report.MainPick[0].EstimatedUnits)
}

func TestCalculateAutoStoreBranchOnlyPromotedLines(t *testing.T) {
	binSourced := promotedLine("ART-SOURCED", 10)
	binSourced.SourceID = "B-1"
	in := Input{
		Allocated: []entities.AllocatedLine{
			promotedLine("ART-PROMOTED", 10),
			binSourced,
		},
		Buffer: bufferWith(refillUnit("ART-PROMOTED", 20, "P-1", 1, 30)),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.AutoStore, 1)
	assert.Equal(t, "ART-PROMOTED", report.AutoStore[0].Article)
	assert.EqualValues(t, 10, report.AutoStore[0].Shortfall)
	assert.Empty(t, report.MainPick)
}

func TestCalculateBacklogAndPickFacePassthrough(t *testing.T) {
	in := Input{
		Allocated: []entities.AllocatedLine{mainPickLine("ART-1", 10)},
		Buffer:    bufferWith(refillUnit("ART-1", 20, "P-1", 1, 30)),
		Stock: []entities.PickFaceStock{
			{Article: "ART-1", Quantity: decimal.NewFromInt(2), Location: "E05-11"},
		},
		Backlog: map[string]decimal.Decimal{"ART-1": decimal.NewFromFloat(3.4)},
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 1)
	assert.Equal(t, "E05-11", report.MainPick[0].PickFace)
	assert.EqualValues(t, 3, report.MainPick[0].Backlog)
}

func TestCalculateMainPickSortOrder(t *testing.T) {
	in := Input{
		Allocated: []entities.AllocatedLine{
			bulkyLine("ART-S", 10),
			mainPickLine("ART-SMALL", 5),
			mainPickLine("ART-BIG", 30),
		},
		Buffer: bufferWith(
			refillUnit("ART-S", 5, "P-1", 1, 30),
			refillUnit("ART-SMALL", 5, "P-2", 1, 30),
			refillUnit("ART-BIG", 5, "P-3", 1, 30),
			refillUnit("ART-BIG", 5, "P-4", 2, 30),
			refillUnit("ART-BIG", 5, "P-5", 3, 30),
		),
	}
	report, err := testCalculator(t).Calculate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.MainPick, 3)
	// Zone A rows first (more estimated units first), zone S last
	assert.Equal(t, "ART-BIG", report.MainPick[0].Article)
	assert.Equal(t, "ART-SMALL", report.MainPick[1].Article)
	assert.Equal(t, entities.ZoneBulky, report.MainPick[2].Zone)
}

func TestCalculateEmptyInputs(t *testing.T) {
	report, err := testCalculator(t).Calculate(context.Background(), Input{})
	require.NoError(t, err)
	assert.NotNil(t, report.MainPick)
	assert.NotNil(t, report.AutoStore)
	assert.Empty(t, report.MainPick)
	assert.Empty(t, report.AutoStore)
}
