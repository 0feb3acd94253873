// Package geography derives the per-state sales-method dominance table that
// feeds choropleth-style reporting: for each state, the percent share of each
// canonical method, the dominant method, and the USPS state abbreviation.
// Rendering the map itself is out of scope; this package only prepares the
// data behind it.
package geography

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"salescli/pkg/contracts/domain"
)

// stateAbbreviations maps full US state names to USPS abbreviations
var stateAbbreviations = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT",
	"Delaware": "DE", "Florida": "FL", "Georgia": "GA", "Hawaii": "HI",
	"Idaho": "ID", "Illinois": "IL", "Indiana": "IN", "Iowa": "IA",
	"Kansas": "KS", "Kentucky": "KY", "Louisiana": "LA", "Maine": "ME",
	"Maryland": "MD", "Massachusetts": "MA", "Michigan": "MI",
	"Minnesota": "MN", "Mississippi": "MS", "Missouri": "MO",
	"Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM",
	"New York": "NY", "North Carolina": "NC", "North Dakota": "ND",
	"Ohio": "OH", "Oklahoma": "OK", "Oregon": "OR", "Pennsylvania": "PA",
	"Rhode Island": "RI", "South Carolina": "SC", "South Dakota": "SD",
	"Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT",
	"Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY",
}

// Abbreviation returns the USPS abbreviation for a full state name, or ""
// if the name is not one of the 50 states
func Abbreviation(state string) string {
	return stateAbbreviations[state]
}

// StateDominance describes which sales method dominates one state
type StateDominance struct {
	State        string                         `json:"state"`
	Abbreviation string                         `json:"state_abbrev"`
	Interactions int                            `json:"interactions"`
	MethodShare  map[domain.SalesMethod]float64 `json:"method_share"` // percent, sums to 100
	Dominant     domain.SalesMethod             `json:"dominant_method"`
	Strength     float64                        `json:"dominance_strength"` // percent share of the dominant method
}

// DominanceByState computes the percent breakdown of interactions per method
// within each state and picks the dominant method. States with zero
// interactions are absent from the result.
func DominanceByState(ctx context.Context, logger *slog.Logger, rows []domain.Interaction) []StateDominance {
	if logger == nil {
		logger = slog.Default()
	}

	counts := make(map[string]map[domain.SalesMethod]int)
	totals := make(map[string]int)
	for _, row := range rows {
		if counts[row.State] == nil {
			counts[row.State] = make(map[domain.SalesMethod]int)
		}
		counts[row.State][row.SalesMethod]++
		totals[row.State]++
	}

	result := make([]StateDominance, 0, len(counts))
	for state, methodCounts := range counts {
		total := totals[state]

		dominance := StateDominance{
			State:        state,
			Abbreviation: Abbreviation(state),
			Interactions: total,
			MethodShare:  make(map[domain.SalesMethod]float64, len(methodCounts)),
		}

		for _, method := range domain.AllSalesMethods() {
			n, ok := methodCounts[method]
			if !ok {
				continue
			}
			share := float64(n) / float64(total) * 100
			dominance.MethodShare[method] = share
			if share > dominance.Strength {
				dominance.Strength = share
				dominance.Dominant = method
			}
		}

		result = append(result, dominance)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].State < result[j].State
	})

	logger.InfoContext(ctx, "computed geographic dominance",
		slog.Int("states", len(result)))

	return result
}

// SaveToCSV writes the dominance table in a choropleth-ready layout: one row
// per state with the share of each canonical method
func SaveToCSV(dominance []StateDominance, outputPath string) error {
	if len(dominance) == 0 {
		return fmt.Errorf("no dominance entries to save")
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

	header := []string{"State", "StateAbbrev", "Interactions"}
	for _, method := range domain.AllSalesMethods() {
		header = append(header, fmt.Sprintf("Share_%s", method))
	}
	header = append(header, "DominantMethod", "DominanceStrength")

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, d := range dominance {
		record := []string{d.State, d.Abbreviation, strconv.Itoa(d.Interactions)}
		for _, method := range domain.AllSalesMethods() {
			record = append(record, strconv.FormatFloat(d.MethodShare[method], 'f', 2, 64))
		}
		record = append(record,
			d.Dominant.String(),
			strconv.FormatFloat(d.Strength, 'f', 2, 64),
		)

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record for %s: %w", d.State, err)
		}
	}

	return nil
}
