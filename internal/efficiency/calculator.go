package efficiency

import (
	"context"
	"log/slog"
	"sort"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Calculator derives TRMNS rankings from grouped aggregates
type Calculator struct {
	logger *slog.Logger
	costs  MinuteCosts
}

// NewCalculator creates a new TRMNS calculator with the given minute costs
func NewCalculator(logger *slog.Logger, costs MinuteCosts) (*Calculator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !costs.IsValid() {
		return nil, errors.NewConfigError("minute costs must all be positive", nil)
	}
	return &Calculator{logger: logger, costs: costs}, nil
}

// Rank computes TRMNS per sales method and returns the table sorted by TRMNS
// descending, ranks assigned 1..n. Aggregates with zero interactions never
// reach this point (empty groups are not materialized upstream), and a group
// whose total minute cost is zero is skipped rather than divided by.
func (c *Calculator) Rank(ctx context.Context, aggregates []domain.MethodAggregate) []MethodEfficiency {
	entries := make([]MethodEfficiency, 0, len(aggregates))

	for _, agg := range aggregates {
		if agg.Count == 0 {
			continue
		}
		totalMinutes := c.costs.PerInteraction(agg.Method) * float64(agg.Count)
		if totalMinutes <= 0 {
			c.logger.WarnContext(ctx, "skipping group with zero time cost",
				slog.String("sales_method", agg.Method.String()))
			continue
		}

		entries = append(entries, MethodEfficiency{
			Method:       agg.Method,
			Interactions: agg.Count,
			TotalRevenue: agg.TotalRevenue,
			TotalMinutes: totalMinutes,
			TRMNS:        agg.TotalRevenue / totalMinutes,
		})
	}

	sortAndRank(entries)

	c.logger.InfoContext(ctx, "ranked sales methods by efficiency",
		slog.Int("methods", len(entries)))

	return entries
}

// RankByState computes per-method TRMNS tables within each state, each table
// ranked by TRMNS descending. States are returned in alphabetical order.
func (c *Calculator) RankByState(ctx context.Context, aggregates []domain.MethodStateAggregate) []StateEfficiency {
	byState := make(map[string][]MethodEfficiency)

	for _, agg := range aggregates {
		if agg.Count == 0 {
			continue
		}
		totalMinutes := c.costs.PerInteraction(agg.Method) * float64(agg.Count)
		if totalMinutes <= 0 {
			continue
		}

		byState[agg.State] = append(byState[agg.State], MethodEfficiency{
			Method:       agg.Method,
			Interactions: agg.Count,
			TotalRevenue: agg.TotalRevenue,
			TotalMinutes: totalMinutes,
			TRMNS:        agg.TotalRevenue / totalMinutes,
		})
	}

	states := make([]StateEfficiency, 0, len(byState))
	for state, entries := range byState {
		sortAndRank(entries)
		states = append(states, StateEfficiency{State: state, Methods: entries})
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].State < states[j].State
	})

	c.logger.InfoContext(ctx, "ranked sales methods by efficiency per state",
		slog.Int("states", len(states)))

	return states
}

// sortAndRank orders entries by TRMNS descending (method order breaks ties
// deterministically) and assigns 1-based ranks
func sortAndRank(entries []MethodEfficiency) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TRMNS != entries[j].TRMNS {
			return entries[i].TRMNS > entries[j].TRMNS
		}
		return entries[i].Method < entries[j].Method
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
