package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/efficiency"
	"salescli/internal/exporter"
	"salescli/internal/geography"
	"salescli/internal/infrastructure"
	"salescli/internal/validation"
	"salescli/pkg/contracts"
	"salescli/pkg/contracts/domain"
)

func main() {
	inputPath := flag.String("in", "", "path to the sales interaction file (.csv or .xlsx)")
	outputDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	configPath := flag.String("config", "", "path to optional config.yaml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.VersionString())
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: sales-report -in product_sales.csv [-out reports] [-config config.yaml]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	if *outputDir == "" {
		*outputDir = cfg.Paths.ReportsDir
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(*inputPath, []string{".csv", ".xlsx"}); err != nil {
		logger.ErrorContext(ctx, "Input validation failed", "error", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(*outputDir); err != nil {
		logger.ErrorContext(ctx, "Output validation failed", "error", err)
		os.Exit(1)
	}

	// Load
	loader := dataprocessing.NewLoader(logger)
	raw, err := loader.Load(*inputPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load input file", "error", err)
		os.Exit(1)
	}

	// Clean
	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.CleanerConfig{
		TenurePolicy:       cfg.Cleaning.TenurePolicy,
		MaxYearsAsCustomer: cfg.Cleaning.MaxYearsAsCustomer,
		MaxWeek:            cfg.Cleaning.MaxWeek,
	})
	cleaned, err := cleaner.Clean(ctx, raw)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to clean interaction table", "error", err)
		os.Exit(1)
	}
	for _, issue := range cleaned.Issues {
		logger.WarnContext(ctx, "Corrected business-rule violation", "issue", issue.String())
	}

	// Aggregate
	aggregator := dataprocessing.NewAggregator(logger)
	byMethod := aggregator.ByMethod(ctx, cleaned.Rows)
	byMethodWeek := aggregator.ByMethodWeek(ctx, cleaned.Rows)
	byMethodState := aggregator.ByMethodState(ctx, cleaned.Rows)

	// TRMNS efficiency metric
	calc, err := efficiency.NewCalculator(logger, efficiency.MinuteCostsFromConfig(cfg.Efficiency))
	if err != nil {
		logger.ErrorContext(ctx, "Invalid efficiency configuration", "error", err)
		os.Exit(1)
	}
	ranking := calc.Rank(ctx, byMethod)
	stateRanking := calc.RankByState(ctx, byMethodState)

	// Geographic dominance
	dominance := geography.DominanceByState(ctx, logger, cleaned.Rows)

	if err := writeReports(*outputDir, logger, cleaned, byMethod, byMethodWeek, byMethodState, ranking, stateRanking, dominance); err != nil {
		logger.ErrorContext(ctx, "Failed to write reports", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Sales report generated",
		"input_rows", cleaned.Stats.InputRows,
		"cleaned_rows", len(cleaned.Rows),
		"reports_dir", *outputDir)

	printRanking(ranking, stateRanking)
}

// writeReports emits every report artifact of the run
func writeReports(
	outputDir string,
	logger *slog.Logger,
	cleaned *dataprocessing.CleanResult,
	byMethod []domain.MethodAggregate,
	byMethodWeek []domain.MethodWeekAggregate,
	byMethodState []domain.MethodStateAggregate,
	ranking []efficiency.MethodEfficiency,
	stateRanking []efficiency.StateEfficiency,
	dominance []geography.StateDominance,
) error {
	timestamp := time.Now().Format("20060102")
	csvWriter := exporter.NewCSVWriter(outputDir, logger)

	aggregateHeaders := []string{"SalesMethod", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"}
	if err := csvWriter.WriteSimpleCSV("methods.csv", aggregateHeaders, methodRecords(byMethod)); err != nil {
		return fmt.Errorf("write method aggregates: %w", err)
	}

	weeklyHeaders := []string{"SalesMethod", "Week", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"}
	if err := csvWriter.WriteSimpleCSV("methods_weekly.csv", weeklyHeaders, methodWeekRecords(byMethodWeek)); err != nil {
		return fmt.Errorf("write weekly aggregates: %w", err)
	}

	stateHeaders := []string{"SalesMethod", "State", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"}
	if err := csvWriter.WriteSimpleCSV("methods_by_state.csv", stateHeaders, methodStateRecords(byMethodState)); err != nil {
		return fmt.Errorf("write state aggregates: %w", err)
	}

	if err := efficiency.SaveToCSV(ranking, filepath.Join(outputDir, "trmns_ranking.csv")); err != nil {
		return fmt.Errorf("write TRMNS ranking: %w", err)
	}
	if err := efficiency.SaveStatesToCSV(stateRanking, filepath.Join(outputDir, "trmns_by_state.csv")); err != nil {
		return fmt.Errorf("write per-state TRMNS ranking: %w", err)
	}
	if err := efficiency.SaveToJSON(ranking, stateRanking, filepath.Join(outputDir, "trmns.json")); err != nil {
		return fmt.Errorf("write TRMNS JSON: %w", err)
	}
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("trmns_summary_%s.txt", timestamp))
	if err := efficiency.SaveSummaryReport(ranking, stateRanking, summaryPath); err != nil {
		return fmt.Errorf("write TRMNS summary: %w", err)
	}

	if err := geography.SaveToCSV(dominance, filepath.Join(outputDir, "method_dominance_by_state.csv")); err != nil {
		return fmt.Errorf("write dominance table: %w", err)
	}

	workbook := exporter.NewWorkbookWriter(outputDir, logger)
	sheets := buildWorkbookSheets(byMethod, byMethodWeek, byMethodState, ranking, dominance)
	if err := workbook.Write(fmt.Sprintf("sales_report_%s.xlsx", timestamp), sheets); err != nil {
		return fmt.Errorf("write report workbook: %w", err)
	}

	// Audit trail of automatic corrections
	if len(cleaned.Issues) > 0 {
		issueRecords := make([][]string, 0, len(cleaned.Issues))
		for _, issue := range cleaned.Issues {
			issueRecords = append(issueRecords, []string{
				strconv.Itoa(issue.Row), issue.Field, issue.Rule, issue.Original, issue.Corrected,
			})
		}
		if err := csvWriter.WriteSimpleCSV("cleaning_issues.csv",
			[]string{"Row", "Field", "Rule", "Original", "Corrected"}, issueRecords); err != nil {
			return fmt.Errorf("write cleaning issues: %w", err)
		}
	}

	return nil
}

func methodRecords(aggregates []domain.MethodAggregate) [][]string {
	records := make([][]string, 0, len(aggregates))
	for _, a := range aggregates {
		records = append(records, []string{
			a.Method.String(),
			strconv.Itoa(a.Count),
			formatFloat(a.TotalRevenue, 2),
			formatFloat(a.MeanRevenue, 2),
			formatFloat(a.MeanNbSold, 2),
			formatFloat(a.MeanNbSiteVisits, 2),
		})
	}
	return records
}

func methodWeekRecords(aggregates []domain.MethodWeekAggregate) [][]string {
	records := make([][]string, 0, len(aggregates))
	for _, a := range aggregates {
		records = append(records, []string{
			a.Method.String(),
			strconv.Itoa(a.Week),
			strconv.Itoa(a.Count),
			formatFloat(a.TotalRevenue, 2),
			formatFloat(a.MeanRevenue, 2),
			formatFloat(a.MeanNbSold, 2),
			formatFloat(a.MeanNbSiteVisits, 2),
		})
	}
	return records
}

func methodStateRecords(aggregates []domain.MethodStateAggregate) [][]string {
	records := make([][]string, 0, len(aggregates))
	for _, a := range aggregates {
		records = append(records, []string{
			a.Method.String(),
			a.State,
			strconv.Itoa(a.Count),
			formatFloat(a.TotalRevenue, 2),
			formatFloat(a.MeanRevenue, 2),
			formatFloat(a.MeanNbSold, 2),
			formatFloat(a.MeanNbSiteVisits, 2),
		})
	}
	return records
}

func buildWorkbookSheets(
	byMethod []domain.MethodAggregate,
	byMethodWeek []domain.MethodWeekAggregate,
	byMethodState []domain.MethodStateAggregate,
	ranking []efficiency.MethodEfficiency,
	dominance []geography.StateDominance,
) []exporter.Sheet {
	methodRows := make([][]interface{}, 0, len(byMethod))
	for _, a := range byMethod {
		methodRows = append(methodRows, []interface{}{
			a.Method.String(), a.Count, a.TotalRevenue, a.MeanRevenue, a.MeanNbSold, a.MeanNbSiteVisits,
		})
	}

	weeklyRows := make([][]interface{}, 0, len(byMethodWeek))
	for _, a := range byMethodWeek {
		weeklyRows = append(weeklyRows, []interface{}{
			a.Method.String(), a.Week, a.Count, a.TotalRevenue, a.MeanRevenue, a.MeanNbSold, a.MeanNbSiteVisits,
		})
	}

	stateRows := make([][]interface{}, 0, len(byMethodState))
	for _, a := range byMethodState {
		stateRows = append(stateRows, []interface{}{
			a.Method.String(), a.State, a.Count, a.TotalRevenue, a.MeanRevenue, a.MeanNbSold, a.MeanNbSiteVisits,
		})
	}

	efficiencyRows := make([][]interface{}, 0, len(ranking))
	for _, e := range ranking {
		efficiencyRows = append(efficiencyRows, []interface{}{
			e.Rank, e.Method.String(), e.Interactions, e.TotalRevenue, e.TotalMinutes, e.TRMNS,
		})
	}

	dominanceRows := make([][]interface{}, 0, len(dominance))
	for _, d := range dominance {
		dominanceRows = append(dominanceRows, []interface{}{
			d.State, d.Abbreviation, d.Interactions, d.Dominant.String(), d.Strength,
		})
	}

	return []exporter.Sheet{
		{
			Name:    "Methods",
			Headers: []string{"SalesMethod", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"},
			Rows:    methodRows,
		},
		{
			Name:    "Weekly",
			Headers: []string{"SalesMethod", "Week", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"},
			Rows:    weeklyRows,
		},
		{
			Name:    "States",
			Headers: []string{"SalesMethod", "State", "Count", "TotalRevenue", "MeanRevenue", "MeanNbSold", "MeanNbSiteVisits"},
			Rows:    stateRows,
		},
		{
			Name:    "Efficiency",
			Headers: []string{"Rank", "SalesMethod", "Interactions", "TotalRevenue", "TotalMinutes", "TRMNS"},
			Rows:    efficiencyRows,
		},
		{
			Name:    "Dominance",
			Headers: []string{"State", "StateAbbrev", "Interactions", "DominantMethod", "DominanceStrength"},
			Rows:    dominanceRows,
		},
	}
}

func printRanking(ranking []efficiency.MethodEfficiency, stateRanking []efficiency.StateEfficiency) {
	fmt.Println("\n=== SALES METHOD EFFICIENCY (TRMNS, revenue per minute) ===")
	fmt.Println("Rank | Method         | Interactions | Revenue      | Minutes    | TRMNS")
	fmt.Println("-----|----------------|--------------|--------------|------------|-------")

	for _, e := range ranking {
		fmt.Printf("%4d | %-14s | %12d | %12.2f | %10.1f | %.4f\n",
			e.Rank, e.Method, e.Interactions, e.TotalRevenue, e.TotalMinutes, e.TRMNS)
	}

	fmt.Println("\n=== STATE LEADERS (best method per state) ===")
	for _, s := range stateRanking {
		if len(s.Methods) == 0 {
			continue
		}
		best := s.Methods[0]
		fmt.Printf("%-20s %-14s TRMNS=%.4f\n", s.State, best.Method, best.TRMNS)
	}
}

func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
