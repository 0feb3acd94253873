package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet is one tab of the report workbook
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WorkbookWriter writes all summary tables of a run into one Excel workbook
type WorkbookWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer writing under baseDir
func NewWorkbookWriter(baseDir string, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{baseDir: baseDir, logger: logger}
}

// Write creates the workbook with one tab per sheet, headers in row 1
func (w *WorkbookWriter) Write(filePath string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	fullPath := filePath
	if !filepath.IsAbs(fullPath) && w.baseDir != "" {
		fullPath = filepath.Join(w.baseDir, fullPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			// The default sheet becomes the first tab
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("create sheet %q: %w", sheet.Name, err)
			}
		}

		header := make([]interface{}, len(sheet.Headers))
		for j, h := range sheet.Headers {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("write header of sheet %q: %w", sheet.Name, err)
		}

		for rowIdx, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("cell name for sheet %q row %d: %w", sheet.Name, rowIdx, err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("write row %d of sheet %q: %w", rowIdx, sheet.Name, err)
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote report workbook",
		slog.String("path", fullPath),
		slog.Int("sheets", len(sheets)))

	return nil
}
