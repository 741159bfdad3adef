package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordicwms/allokera/pkg/allocation"
	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/refill"
	"github.com/nordicwms/allokera/pkg/schema"
)

func testService(t *testing.T) *BatchService {
	t.Helper()
	return NewBatchService(
		allocation.NewEngine(allocation.DefaultConfig(), nil),
		refill.NewCalculator(refill.DefaultConfig(), nil),
		nil,
	)
}

func testOrders() schema.Table {
	return schema.Table{
		Header: []string{"Ordernr", "Radnr", "Artikel", "Antal"},
		Rows: [][]string{
			{"O-1", "1", "ART-1", "120"},
			{"O-1", "2", "ART-2", "35"},
		},
	}
}

func testBuffer() schema.Table {
	return schema.Table{
		Header: []string{"PallID", "Artikel", "Antal", "Lagerplats", "Datum/tid", "Status"},
		Rows: [][]string{
			{"P-1", "ART-1", "100", "B01-02", "2025-11-03 08:00:00", "30"},
			{"B-1", "ART-2", "20", "AUTOSTORE-12", "2025-11-05 08:00:00", "30"},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	stock := schema.Table{
		Header: []string{"Artikel", "Plocksaldo", "Plockplats"},
		Rows: [][]string{
			{"ART-1", "5", "E01-01"},
			{"ART-2", "2", "SK-04"},
		},
	}
	out, err := testService(t).Run(context.Background(), RunInput{
		Orders: testOrders(),
		Buffer: testBuffer(),
		Stock:  &stock,
	})
	require.NoError(t, err)

	// ART-1: pallet 100 + fallback 20; ART-2: bin 20 + fallback 15
	require.Len(t, out.Allocation.Lines, 4)

	sums := make(map[string]decimal.Decimal)
	for _, l := range out.Allocation.Lines {
		sums[l.Article] = sums[l.Article].Add(l.Allocated)
	}
	assert.True(t, sums["ART-1"].Equal(decimal.NewFromInt(120)))
	assert.True(t, sums["ART-2"].Equal(decimal.NewFromInt(35)))

	// ART-2's fallback is promoted to AUTOSTORE, then the bulky pick
	// face reclassifies it
	var art2Fallback *entities.AllocatedLine
	for i := range out.Allocation.Lines {
		l := &out.Allocation.Lines[i]
		if l.Article == "ART-2" && l.SourceID == "" {
			art2Fallback = l
		}
	}
	require.NotNil(t, art2Fallback)
	assert.Equal(t, entities.SourceBulky, art2Fallback.Source,
		"promoted line with bulky pick face reclassifies to SKRYMMANDE")

	// ART-1 fallback stays HUVUDPLOCK and drives main-pick refill
	require.NotEmpty(t, out.Refill.MainPick)
	assert.Equal(t, "ART-1", out.Refill.MainPick[0].Article)
	assert.EqualValues(t, 15, out.Refill.MainPick[0].Shortfall, "fallback 20 minus stock 5")
	assert.Equal(t, "E01-01", out.Refill.MainPick[0].PickFace)
}

func TestRunWithoutOptionalTables(t *testing.T) {
	out, err := testService(t).Run(context.Background(), RunInput{
		Orders: testOrders(),
		Buffer: testBuffer(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Allocation.Lines)
	assert.NotNil(t, out.Refill)
	assert.Empty(t, out.Metrics)
}

func TestRunPickLogProducesMetrics(t *testing.T) {
	picklog := schema.Table{
		Header: []string{"Artikel", "Plockat", "Datum"},
		Rows: [][]string{
			{"ART-1", "30", "2025-11-01"},
			{"ART-1", "50", "2025-11-02"},
		},
	}
	out, err := testService(t).Run(context.Background(), RunInput{
		Orders:  testOrders(),
		Buffer:  testBuffer(),
		PickLog: &picklog,
		Today:   time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NotEmpty(t, out.Metrics)
	assert.Equal(t, "ART-1", out.Metrics[0].Article)
	assert.Equal(t, 2, out.Metrics[0].PickDays)

	// Metrics are joined onto the refill rows for the same article
	for _, r := range out.Refill.MainPick {
		if r.Article == "ART-1" {
			assert.NotNil(t, r.Metrics)
		}
	}
}

func TestRunBrokenOptionalTableDegrades(t *testing.T) {
	badStock := schema.Table{Header: []string{"Nonsense"}, Rows: [][]string{{"x"}}}
	out, err := testService(t).Run(context.Background(), RunInput{
		Orders: testOrders(),
		Buffer: testBuffer(),
		Stock:  &badStock,
	})
	require.NoError(t, err, "a broken optional table must not fail the run")
	assert.NotEmpty(t, out.Allocation.Lines)
}

func TestRunMissingRequiredColumnFails(t *testing.T) {
	_, err := testService(t).Run(context.Background(), RunInput{
		Orders: schema.Table{Header: []string{"Foo"}},
		Buffer: testBuffer(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order")
}
