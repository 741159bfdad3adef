package main

import (
	"context"
	"fmt"

	"github.com/nordicwms/allokera/pkg/allocation"
	"github.com/nordicwms/allokera/pkg/application/services"
	"github.com/nordicwms/allokera/pkg/refill"
	"github.com/nordicwms/allokera/pkg/schema"
)

func main() {
	ctx := context.Background()

	// A small batch: two orders for the same article, buffer stock split
	// between whole pallets and an automated-storage bin.
	orders := schema.Table{
		Header: []string{"Ordernummer", "Radnummer", "Artikelnummer", "Antal"},
		Rows: [][]string{
			{"O-1001", "1", "ART-1", "120"},
			{"O-1001", "2", "ART-2", "35"},
			{"O-1002", "1", "ART-1", "80"},
		},
	}
	buffer := schema.Table{
		Header: []string{"PallID", "Artikelnummer", "Antal", "Lagerplats", "Mottagen", "Status"},
		Rows: [][]string{
			{"P-1", "ART-1", "100", "B01-02", "2025-11-03 08:00:00", "30"},
			{"P-2", "ART-1", "60", "B01-05", "2025-11-10 08:00:00", "29"},
			{"P-3", "ART-2", "20", "AUTOSTORE-12", "2025-11-05 08:00:00", "30"},
			{"P-4", "ART-2", "400", "AA-99", "2025-11-01 08:00:00", "30"}, // blocked location
		},
	}
	stock := schema.Table{
		Header: []string{"Artikelnummer", "Plockplats", "Plocksaldo"},
		Rows: [][]string{
			{"ART-1", "E01-01", "15"},
			{"ART-2", "SK-04", "5"},
		},
	}

	service := services.NewBatchService(
		allocation.NewEngine(allocation.DefaultConfig(), nil),
		refill.NewCalculator(refill.DefaultConfig(), nil),
		nil,
	)

	run, err := service.Run(ctx, services.RunInput{
		Orders: orders,
		Buffer: buffer,
		Stock:  &stock,
	})
	if err != nil {
		fmt.Printf("batch failed: %v\n", err)
		return
	}

	fmt.Println("Allocated lines:")
	for _, l := range run.Allocation.Lines {
		fmt.Printf("  %s line %s: %s x%s from %s %s (zone %s)\n",
			l.OrderID, l.LineID, l.Article, l.Allocated, l.Source, l.SourceID, l.Zone)
	}

	fmt.Println("\nNear misses:")
	for _, nm := range run.Allocation.NearMisses {
		fmt.Printf("  %s: pallet %s (%s) vs need %s, +%s%%\n",
			nm.Article, nm.SourceID, nm.PalletQty, nm.NeedAtTime, nm.PercentDiff.Round(1))
	}

	fmt.Println("\nMain-pick refill:")
	for _, r := range run.Refill.MainPick {
		fmt.Printf("  %s zone %s: need %d, %d buffer units, sufficient=%v\n",
			r.Article, r.Zone, r.Shortfall, r.EstimatedUnits, r.Sufficient)
	}
	fmt.Println("\nAutoStore refill:")
	for _, r := range run.Refill.AutoStore {
		fmt.Printf("  %s: need %d, %d buffer units, sufficient=%v\n",
			r.Article, r.Shortfall, r.EstimatedUnits, r.Sufficient)
	}
}
