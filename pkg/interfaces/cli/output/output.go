// Package output renders a batch run as a terminal summary, CSV files
// or an Excel workbook.
package output

import (
	"fmt"
	"time"

	"github.com/nordicwms/allokera/pkg/application/services"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	RunTime   time.Duration
}

// Generate creates output in the specified format. The text format
// prints a summary to stdout; csv and xlsx write report files into the
// output directory and print their paths.
func Generate(run *services.RunOutput, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(run, config)
	case "csv":
		return generateCSVOutput(run, config)
	case "xlsx":
		return generateXLSXOutput(run, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// tables renders the four reports of one run
func tables(run *services.RunOutput) []ReportTable {
	return []ReportTable{
		AllocationTable(run.Orders, run.Allocation.Lines),
		NearMissTable(run.Allocation.NearMisses),
		MainPickRefillTable(run.Refill.MainPick),
		AutoStoreRefillTable(run.Refill.AutoStore),
	}
}

func generateTextOutput(run *services.RunOutput, config Config) error {
	fmt.Printf("Allocation Summary\n")
	fmt.Printf("==================\n\n")

	fmt.Printf("Allocated lines:      %d\n", len(run.Allocation.Lines))
	fmt.Printf("Near misses:          %d\n", len(run.Allocation.NearMisses))
	fmt.Printf("Dropped order lines:  %d\n", run.Allocation.DroppedOrderLines)
	fmt.Printf("Main-pick refill:     %d rows\n", len(run.Refill.MainPick))
	fmt.Printf("AutoStore refill:     %d rows\n", len(run.Refill.AutoStore))
	if config.RunTime > 0 {
		fmt.Printf("Run time:             %v\n", config.RunTime)
	}
	fmt.Println()

	if config.Verbose {
		fmt.Printf("Rejected buffer units: %d by status, %d by location, %d by quantity\n\n",
			run.Allocation.RejectedByStatus,
			run.Allocation.RejectedByLocation,
			run.Allocation.RejectedByQuantity)
		for _, t := range tables(run) {
			printTable(t)
		}
	}
	return nil
}

func printTable(t ReportTable) {
	fmt.Printf("%s (%d rows)\n", t.Name, len(t.Rows))
	for i, row := range t.Rows {
		if i >= 20 {
			fmt.Printf("  ... %d more\n", len(t.Rows)-i)
			break
		}
		fmt.Printf("  %v\n", row)
	}
	fmt.Println()
}
