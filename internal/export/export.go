// Package export writes a parsed schedule to the three output formats the
// tool produces: flat CSV, the full result as JSON, and an XLSX workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/shiftscan/shiftscan/internal/schedule"
)

// Default export file names inside the userdata directory.
const (
	CSVFileName  = "shifts.csv"
	JSONFileName = "shifts.json"
	XLSXFileName = "shifts.xlsx"

	xlsxSheetName = "Shifts"
)

// WriteCSV writes the result's records as a flat CSV table with a header row.
func WriteCSV(path string, result *schedule.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schedule.CSVHeader()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range result.Records {
		if err := w.Write(r.CSVRow()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv export: %w", err)
	}
	return f.Close()
}

// WriteJSON writes the full result, identity fields included, as indented
// JSON.
func WriteJSON(path string, result *schedule.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write json export: %w", err)
	}
	return nil
}

// WriteXLSX writes the records to a single-sheet workbook named "Shifts",
// one header row followed by one row per record.
func WriteXLSX(path string, result *schedule.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := schedule.CSVHeader()
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &cells); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, r := range result.Records {
		row := r.CSVRow()
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute xlsx cell: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save xlsx export: %w", err)
	}
	return nil
}

// WriteAll writes all three formats into dir using the default file names and
// returns the paths written. The first failure aborts the remaining formats.
func WriteAll(dir string, result *schedule.Result) ([]string, error) {
	outputs := []struct {
		name  string
		write func(string, *schedule.Result) error
	}{
		{CSVFileName, WriteCSV},
		{JSONFileName, WriteJSON},
		{XLSXFileName, WriteXLSX},
	}

	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(dir, out.name)
		if err := out.write(path, result); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
