package exporter

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookWriter_Write(t *testing.T) {
	baseDir := t.TempDir()
	writer := NewWorkbookWriter(baseDir, slog.Default())

	sheets := []Sheet{
		{
			Name:    "Methods",
			Headers: []string{"SalesMethod", "Count"},
			Rows: [][]interface{}{
				{"email", 3},
				{"call", 1},
			},
		},
		{
			Name:    "Efficiency",
			Headers: []string{"Rank", "SalesMethod", "TRMNS"},
			Rows: [][]interface{}{
				{1, "email", 20.0},
			},
		},
	}

	require.NoError(t, writer.Write("sales_report.xlsx", sheets))

	f, err := excelize.OpenFile(filepath.Join(baseDir, "sales_report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Methods", "Efficiency"}, f.GetSheetList())

	rows, err := f.GetRows("Methods")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SalesMethod", "Count"}, rows[0])
	assert.Equal(t, []string{"email", "3"}, rows[1])

	cell, err := f.GetCellValue("Efficiency", "C2")
	require.NoError(t, err)
	assert.Equal(t, "20", cell)
}

func TestWorkbookWriter_NoSheets(t *testing.T) {
	writer := NewWorkbookWriter(t.TempDir(), slog.Default())

	err := writer.Write("empty.xlsx", nil)
	require.Error(t, err)
}
