package efficiency

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// SaveToCSV saves the overall method ranking to a CSV file
func SaveToCSV(entries []MethodEfficiency, outputPath string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no efficiency entries to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Rank", "SalesMethod", "Interactions", "TotalRevenue", "TotalMinutes", "TRMNS"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Rank),
			entry.Method.String(),
			strconv.Itoa(entry.Interactions),
			formatFloat(entry.TotalRevenue, 2),
			formatFloat(entry.TotalMinutes, 1),
			formatFloat(entry.TRMNS, 4),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record for %s: %w", entry.Method, err)
		}
	}

	return nil
}

// SaveStatesToCSV saves the per-state rankings to a CSV file, one row per
// (state, method)
func SaveStatesToCSV(states []StateEfficiency, outputPath string) error {
	if len(states) == 0 {
		return fmt.Errorf("no state efficiency entries to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"State", "Rank", "SalesMethod", "Interactions", "TotalRevenue", "TotalMinutes", "TRMNS"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, state := range states {
		for _, entry := range state.Methods {
			record := []string{
				state.State,
				strconv.Itoa(entry.Rank),
				entry.Method.String(),
				strconv.Itoa(entry.Interactions),
				formatFloat(entry.TotalRevenue, 2),
				formatFloat(entry.TotalMinutes, 1),
				formatFloat(entry.TRMNS, 4),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write CSV record for %s/%s: %w", state.State, entry.Method, err)
			}
		}
	}

	return nil
}

// SaveToJSON saves the overall and per-state rankings to a JSON file with a
// metadata envelope
func SaveToJSON(entries []MethodEfficiency, states []StateEfficiency, outputPath string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no efficiency entries to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	output := map[string]interface{}{
		"metadata": map[string]interface{}{
			"generated_at": time.Now().Format(time.RFC3339),
			"methods":      len(entries),
			"states":       len(states),
		},
		"overall":  entries,
		"by_state": states,
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

// SaveSummaryReport creates a plain-text summary of the efficiency analysis
func SaveSummaryReport(entries []MethodEfficiency, states []StateEfficiency, outputPath string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no efficiency entries to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "TRMNS Efficiency - Summary Report\n")
	fmt.Fprintf(file, "=================================\n\n")
	fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(file, "METHOD RANKING (revenue per minute)\n")
	fmt.Fprintf(file, "-----------------------------------\n")
	for _, entry := range entries {
		fmt.Fprintf(file, "%d. %-14s TRMNS=%.4f (revenue %.2f over %.1f minutes, %d interactions)\n",
			entry.Rank, entry.Method, entry.TRMNS, entry.TotalRevenue, entry.TotalMinutes, entry.Interactions)
	}
	fmt.Fprintf(file, "\n")

	if len(states) > 0 {
		top, bottom := rankStatesByBestTRMNS(states)

		fmt.Fprintf(file, "TOP 10 STATES (best method TRMNS)\n")
		fmt.Fprintf(file, "---------------------------------\n")
		for i, s := range top {
			best := s.Methods[0]
			fmt.Fprintf(file, "%2d. %-20s %s: %.4f\n", i+1, s.State, best.Method, best.TRMNS)
		}
		fmt.Fprintf(file, "\n")

		fmt.Fprintf(file, "BOTTOM 10 STATES (best method TRMNS)\n")
		fmt.Fprintf(file, "------------------------------------\n")
		for i, s := range bottom {
			best := s.Methods[0]
			fmt.Fprintf(file, "%2d. %-20s %s: %.4f\n", i+1, s.State, best.Method, best.TRMNS)
		}
	}

	return nil
}

// rankStatesByBestTRMNS returns the top and bottom ten states ordered by the
// TRMNS of each state's best-ranked method
func rankStatesByBestTRMNS(states []StateEfficiency) (top, bottom []StateEfficiency) {
	ranked := make([]StateEfficiency, 0, len(states))
	for _, s := range states {
		if len(s.Methods) > 0 {
			ranked = append(ranked, s)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Methods[0].TRMNS > ranked[j].Methods[0].TRMNS
	})

	n := 10
	if n > len(ranked) {
		n = len(ranked)
	}
	top = ranked[:n]

	start := len(ranked) - n
	bottom = ranked[start:]
	return top, bottom
}

// formatFloat formats a float64 value for CSV output with given precision
func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
