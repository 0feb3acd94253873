package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"salescli/pkg/contracts/domain"
)

// Aggregator computes grouped summary statistics over the cleaned table.
// Aggregation is a pure function of its input: identical input always yields
// identical output, and groups with zero rows are never materialized.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// accumulator collects running sums for one group
type accumulator struct {
	count        int
	totalRevenue float64
	totalNbSold  int
	totalVisits  int
}

func (a *accumulator) add(row domain.Interaction) {
	a.count++
	a.totalRevenue += row.Revenue
	a.totalNbSold += row.NbSold
	a.totalVisits += row.NbSiteVisits
}

func (a *accumulator) meanRevenue() float64 {
	return a.totalRevenue / float64(a.count)
}

func (a *accumulator) meanNbSold() float64 {
	return float64(a.totalNbSold) / float64(a.count)
}

func (a *accumulator) meanVisits() float64 {
	return float64(a.totalVisits) / float64(a.count)
}

// methodOrder gives canonical methods a stable display order
func methodOrder(m domain.SalesMethod) int {
	for i, method := range domain.AllSalesMethods() {
		if m == method {
			return i
		}
	}
	return len(domain.AllSalesMethods())
}

// ByMethod groups the cleaned table by sales method
func (a *Aggregator) ByMethod(ctx context.Context, rows []domain.Interaction) []domain.MethodAggregate {
	groups := make(map[domain.SalesMethod]*accumulator)
	for _, row := range rows {
		acc, ok := groups[row.SalesMethod]
		if !ok {
			acc = &accumulator{}
			groups[row.SalesMethod] = acc
		}
		acc.add(row)
	}

	aggregates := make([]domain.MethodAggregate, 0, len(groups))
	for method, acc := range groups {
		aggregates = append(aggregates, domain.MethodAggregate{
			Method:           method,
			Count:            acc.count,
			TotalRevenue:     acc.totalRevenue,
			MeanRevenue:      acc.meanRevenue(),
			MeanNbSold:       acc.meanNbSold(),
			MeanNbSiteVisits: acc.meanVisits(),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return methodOrder(aggregates[i].Method) < methodOrder(aggregates[j].Method)
	})

	a.logger.InfoContext(ctx, "aggregated by sales method",
		slog.Int("groups", len(aggregates)))

	return aggregates
}

// methodWeekKey identifies one (method, week) group
type methodWeekKey struct {
	method domain.SalesMethod
	week   int
}

// ByMethodWeek groups the cleaned table by (sales method, week) for temporal
// trend reporting
func (a *Aggregator) ByMethodWeek(ctx context.Context, rows []domain.Interaction) []domain.MethodWeekAggregate {
	groups := make(map[methodWeekKey]*accumulator)
	for _, row := range rows {
		key := methodWeekKey{method: row.SalesMethod, week: row.Week}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.add(row)
	}

	aggregates := make([]domain.MethodWeekAggregate, 0, len(groups))
	for key, acc := range groups {
		aggregates = append(aggregates, domain.MethodWeekAggregate{
			Method:           key.method,
			Week:             key.week,
			Count:            acc.count,
			TotalRevenue:     acc.totalRevenue,
			MeanRevenue:      acc.meanRevenue(),
			MeanNbSold:       acc.meanNbSold(),
			MeanNbSiteVisits: acc.meanVisits(),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Method != aggregates[j].Method {
			return methodOrder(aggregates[i].Method) < methodOrder(aggregates[j].Method)
		}
		return aggregates[i].Week < aggregates[j].Week
	})

	a.logger.InfoContext(ctx, "aggregated by sales method and week",
		slog.Int("groups", len(aggregates)))

	return aggregates
}

// methodStateKey identifies one (method, state) group
type methodStateKey struct {
	method domain.SalesMethod
	state  string
}

// ByMethodState groups the cleaned table by (sales method, state) for
// geographic reporting
func (a *Aggregator) ByMethodState(ctx context.Context, rows []domain.Interaction) []domain.MethodStateAggregate {
	groups := make(map[methodStateKey]*accumulator)
	for _, row := range rows {
		key := methodStateKey{method: row.SalesMethod, state: row.State}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.add(row)
	}

	aggregates := make([]domain.MethodStateAggregate, 0, len(groups))
	for key, acc := range groups {
		aggregates = append(aggregates, domain.MethodStateAggregate{
			Method:           key.method,
			State:            key.state,
			Count:            acc.count,
			TotalRevenue:     acc.totalRevenue,
			MeanRevenue:      acc.meanRevenue(),
			MeanNbSold:       acc.meanNbSold(),
			MeanNbSiteVisits: acc.meanVisits(),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Method != aggregates[j].Method {
			return methodOrder(aggregates[i].Method) < methodOrder(aggregates[j].Method)
		}
		return aggregates[i].State < aggregates[j].State
	})

	a.logger.InfoContext(ctx, "aggregated by sales method and state",
		slog.Int("groups", len(aggregates)))

	return aggregates
}
