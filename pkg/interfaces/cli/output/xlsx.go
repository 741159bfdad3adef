package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nordicwms/allokera/pkg/application/services"
)

const workbookName = "allokera_report.xlsx"

// generateXLSXOutput writes all four reports into one workbook, one
// sheet per report.
func generateXLSXOutput(run *services.RunOutput, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables(run) {
		// Sheet names are capped at 31 characters by the format
		sheet := t.Name
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, t, headerStyle); err != nil {
			return err
		}
	}

	path := filepath.Join(config.OutputDir, workbookName)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, t ReportTable, headerStyle int) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return fmt.Errorf("failed to resolve column name on %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header on %s: %w", sheet, err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell on %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
