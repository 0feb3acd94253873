package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Expected input columns. The header row must carry exactly this set,
// in any order.
var expectedColumns = []string{
	"week",
	"sales_method",
	"customer_id",
	"nb_sold",
	"revenue",
	"years_as_customer",
	"nb_site_visits",
	"state",
}

// Loader reads the raw interaction table from a delimited or Excel file
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load dispatches on the file extension: .csv is read as a delimited file,
// .xlsx as an Excel workbook.
func (l *Loader) Load(path string) ([]domain.Interaction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.LoadCSV(path)
	case ".xlsx":
		return l.LoadXLSX(path)
	default:
		return nil, errors.NewDataLoadError(
			fmt.Sprintf("unsupported input format %q", filepath.Ext(path)), path, nil)
	}
}

// LoadCSV reads the interaction table from a CSV file with a required header
// row. The only side effect is reading the file.
func (l *Loader) LoadCSV(path string) ([]domain.Interaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to open input file", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDataLoadError("failed to read header row", path, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataLoadError("failed to read data row", path, err)
		}
		rows = append(rows, record)
	}

	return l.parseTable(path, header, rows)
}

// LoadXLSX reads the interaction table from the first sheet of an Excel
// workbook. The sheet layout mirrors the CSV: one header row, then data.
func (l *Loader) LoadXLSX(path string) ([]domain.Interaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to open workbook", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewDataLoadError("workbook has no sheets", path, nil)
	}

	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewDataLoadError("failed to read sheet rows", path, err)
	}
	if len(allRows) == 0 {
		return nil, errors.NewDataLoadError("sheet has no header row", path, nil)
	}

	return l.parseTable(path, allRows[0], allRows[1:])
}

// parseTable validates the header against the expected schema and parses
// each data row into a typed Interaction.
func (l *Loader) parseTable(path string, header []string, rows [][]string) ([]domain.Interaction, error) {
	columnMap, err := mapColumns(path, header)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loading interaction table",
		slog.String("path", path),
		slog.Int("data_rows", len(rows)))

	interactions := make([]domain.Interaction, 0, len(rows))
	for i, row := range rows {
		// Header is row 1 in the source file
		rowNum := i + 2

		interaction, err := parseRow(path, columnMap, row, rowNum)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}

	l.logger.Info("loaded interaction table",
		slog.String("path", path),
		slog.Int("records", len(interactions)))

	return interactions, nil
}

// mapColumns maps header names to positions and rejects any header whose
// column set differs from the declared schema.
func mapColumns(path string, header []string) (map[string]int, error) {
	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		columnMap[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range expectedColumns {
		if _, ok := columnMap[name]; !ok {
			missing = append(missing, name)
		}
	}

	expected := make(map[string]bool, len(expectedColumns))
	for _, name := range expectedColumns {
		expected[name] = true
	}
	var extra []string
	for name := range columnMap {
		if !expected[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 || len(extra) > 0 {
		return nil, errors.NewSchemaMismatchError(path, missing, extra)
	}

	return columnMap, nil
}

// parseRow converts one raw row into a typed Interaction. The sales_method
// value is kept verbatim; normalization belongs to the cleaning stage.
func parseRow(path string, columnMap map[string]int, row []string, rowNum int) (domain.Interaction, error) {
	cell := func(name string) string {
		idx := columnMap[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	parseNonNegativeInt := func(name string) (int, error) {
		raw := cell(name)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.NewDataLoadError(
				fmt.Sprintf("row %d: invalid %s value %q", rowNum, name, raw), path, err)
		}
		if v < 0 {
			return 0, errors.NewDataLoadError(
				fmt.Sprintf("row %d: %s must be non-negative, got %d", rowNum, name, v), path, nil)
		}
		return v, nil
	}

	week, err := parseNonNegativeInt("week")
	if err != nil {
		return domain.Interaction{}, err
	}
	nbSold, err := parseNonNegativeInt("nb_sold")
	if err != nil {
		return domain.Interaction{}, err
	}
	years, err := parseNonNegativeInt("years_as_customer")
	if err != nil {
		return domain.Interaction{}, err
	}
	visits, err := parseNonNegativeInt("nb_site_visits")
	if err != nil {
		return domain.Interaction{}, err
	}

	var revenue float64
	revenueMissing := false
	if raw := cell("revenue"); raw == "" {
		revenueMissing = true
	} else {
		revenue, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Interaction{}, errors.NewDataLoadError(
				fmt.Sprintf("row %d: invalid revenue value %q", rowNum, raw), path, err)
		}
		if revenue < 0 {
			return domain.Interaction{}, errors.NewDataLoadError(
				fmt.Sprintf("row %d: revenue must be non-negative, got %f", rowNum, revenue), path, nil)
		}
	}

	return domain.Interaction{
		Week:            week,
		SalesMethod:     domain.SalesMethod(cell("sales_method")),
		CustomerID:      cell("customer_id"),
		NbSold:          nbSold,
		Revenue:         revenue,
		RevenueMissing:  revenueMissing,
		YearsAsCustomer: years,
		NbSiteVisits:    visits,
		State:           cell("state"),
	}, nil
}
