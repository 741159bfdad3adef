// Package commands implements the CLI entry points
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nordicwms/allokera/pkg/allocation"
	"github.com/nordicwms/allokera/pkg/application/services"
	"github.com/nordicwms/allokera/pkg/infrastructure/config"
	"github.com/nordicwms/allokera/pkg/infrastructure/logging"
	"github.com/nordicwms/allokera/pkg/infrastructure/repositories/csv"
	"github.com/nordicwms/allokera/pkg/interfaces/cli/output"
	"github.com/nordicwms/allokera/pkg/refill"
	"github.com/nordicwms/allokera/pkg/schema"
)

// Config holds configuration for the run command
type Config struct {
	ScenarioDir string
	OrdersFile  string
	BufferFile  string
	StockFile   string
	BacklogFile string
	PickLogFile string
	OutputDir   string
	Format      string
	ConfigDir   string
	Verbose     bool
	Help        bool
}

// RunCommand executes one allocation batch end to end
type RunCommand struct {
	config Config
}

// NewRunCommand creates a new run command with the given configuration
func NewRunCommand(config Config) *RunCommand {
	return &RunCommand{config: config}
}

// Execute runs the command
func (c *RunCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.LoadFrom(c.config.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// Flags override the config file
	if c.config.Format != "" {
		cfg.Output.Format = c.config.Format
	}
	if c.config.OutputDir != "" {
		cfg.Output.Dir = c.config.OutputDir
	}
	if c.config.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(logging.Config(cfg.Log))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	files := c.resolveInputFiles()
	if c.config.Verbose {
		c.printHeader(files, cfg)
	}

	loader := csv.NewLoader()
	orders, err := loader.LoadTable(files["Orders"])
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}
	buffer, err := loader.LoadTable(files["Buffer"])
	if err != nil {
		return fmt.Errorf("error loading buffer: %w", err)
	}

	service := services.NewBatchService(
		allocation.NewEngine(cfg.AllocationConfig(), logger),
		refill.NewCalculator(cfg.CalculatorConfig(), logger),
		logger,
	)

	in := services.RunInput{
		Orders:  orders,
		Buffer:  buffer,
		Stock:   c.loadOptional(loader, logger, files["Stock"], "stock"),
		Backlog: c.loadOptional(loader, logger, files["Backlog"], "backlog"),
		PickLog: c.loadOptional(loader, logger, files["PickLog"], "pick log"),
	}

	startTime := time.Now()
	run, err := service.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("error running allocation batch: %w", err)
	}
	runTime := time.Since(startTime)

	outputConfig := output.Config{
		Format:    cfg.Output.Format,
		OutputDir: cfg.Output.Dir,
		Verbose:   c.config.Verbose,
		RunTime:   runTime,
	}
	if err := output.Generate(run, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// loadOptional loads an enrichment table; a missing or broken file is
// logged and skipped rather than failing the run.
func (c *RunCommand) loadOptional(loader *csv.Loader, logger *zap.Logger, path, name string) *schema.Table {
	if path == "" {
		return nil
	}
	t, err := loader.LoadTable(path)
	if err != nil {
		logger.Warn("skipping optional input", zap.String("table", name), zap.Error(err))
		return nil
	}
	return &t
}

// validateInputs validates the command configuration
func (c *RunCommand) validateInputs() error {
	if c.config.ScenarioDir == "" && (c.config.OrdersFile == "" || c.config.BufferFile == "") {
		return fmt.Errorf("must specify either -scenario directory or both -orders and -buffer files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use. In
// scenario mode the optional files are included only when they exist.
func (c *RunCommand) resolveInputFiles() map[string]string {
	files := map[string]string{
		"Orders":  c.config.OrdersFile,
		"Buffer":  c.config.BufferFile,
		"Stock":   c.config.StockFile,
		"Backlog": c.config.BacklogFile,
		"PickLog": c.config.PickLogFile,
	}
	if c.config.ScenarioDir != "" {
		scenario := map[string]string{
			"Orders":  "orders.csv",
			"Buffer":  "buffer.csv",
			"Stock":   "stock.csv",
			"Backlog": "backlog.csv",
			"PickLog": "picklog.csv",
		}
		for name, base := range scenario {
			if files[name] != "" {
				continue
			}
			path := filepath.Join(c.config.ScenarioDir, base)
			if name == "Orders" || name == "Buffer" {
				files[name] = path
				continue
			}
			if _, err := os.Stat(path); err == nil {
				files[name] = path
			}
		}
	}
	return files
}

// printHeader prints the command header information
func (c *RunCommand) printHeader(files map[string]string, cfg *config.Config) {
	fmt.Printf("Warehouse Allocation CLI\n")
	fmt.Printf("Input files:\n")
	for _, name := range []string{"Orders", "Buffer", "Stock", "Backlog", "PickLog"} {
		if files[name] != "" {
			fmt.Printf("  %s: %s\n", name, files[name])
		}
	}
	fmt.Printf("Output format: %s\n", cfg.Output.Format)
	fmt.Printf("Output directory: %s\n", cfg.Output.Dir)
	fmt.Println()
}

// showHelp displays the help message
func (c *RunCommand) showHelp() {
	fmt.Printf(`allokera - warehouse buffer allocation and refill calculator

USAGE:
    allokera -scenario <directory>             # Use scenario directory with CSV files
    allokera -orders <file> -buffer <file>     # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
                        (orders.csv, buffer.csv, and optionally stock.csv,
                        backlog.csv, picklog.csv)
    -orders <file>      Path to order lines CSV file
    -buffer <file>      Path to buffer stock CSV file
    -stock <file>       Path to pick-face stock CSV file (optional)
    -backlog <file>     Path to not-yet-putaway CSV file (optional)
    -picklog <file>     Path to pick log CSV file (optional)
    -output <dir>       Output directory for report files
    -format <fmt>       Output format: text, csv, xlsx (default: text)
    -config <dir>       Directory to search for allokera.toml
    -verbose            Enable verbose output and debug logging
    -help               Show this help message

CONFIGURATION:
    Policy settings (buffer statuses, blocked locations, near-miss
    threshold) are read from allokera.toml and can be overridden with
    ALLOKERA_-prefixed environment variables.
`)
}
