package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nordicwms/allokera/pkg/application/services"
)

// csvFileNames maps report names to output file names
var csvFileNames = map[string]string{
	"Allokerade ordrar": "allocated_orders.csv",
	"Near miss":         "near_miss.csv",
	"Refill HP":         "refill_hp.csv",
	"Refill AUTOSTORE":  "refill_autostore.csv",
}

func generateCSVOutput(run *services.RunOutput, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, t := range tables(run) {
		name := csvFileNames[t.Name]
		if name == "" {
			name = strings.ToLower(strings.ReplaceAll(t.Name, " ", "_")) + ".csv"
		}
		path := filepath.Join(config.OutputDir, name)
		if err := writeCSVFile(path, t); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d rows)\n", path, len(t.Rows))
	}
	return nil
}

func writeCSVFile(path string, t ReportTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
