package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nordicwms/allokera/pkg/interfaces/cli/commands"
)

func main() {
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		ordersFile  = flag.String("orders", "", "Path to order lines CSV file")
		bufferFile  = flag.String("buffer", "", "Path to buffer stock CSV file")
		stockFile   = flag.String("stock", "", "Path to pick-face stock CSV file (optional)")
		backlogFile = flag.String("backlog", "", "Path to not-yet-putaway CSV file (optional)")
		pickLogFile = flag.String("picklog", "", "Path to pick log CSV file (optional)")
		outputDir   = flag.String("output", "", "Output directory for report files")
		format      = flag.String("format", "", "Output format: text, csv, xlsx")
		configDir   = flag.String("config", "", "Directory to search for allokera.toml")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir: *scenarioDir,
		OrdersFile:  *ordersFile,
		BufferFile:  *bufferFile,
		StockFile:   *stockFile,
		BacklogFile: *backlogFile,
		PickLogFile: *pickLogFile,
		OutputDir:   *outputDir,
		Format:      *format,
		ConfigDir:   *configDir,
		Verbose:     *verbose,
		Help:        *help,
	}

	cmd := commands.NewRunCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
