package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func cleanedRow(week int, method domain.SalesMethod, customer string, nbSold int, revenue float64, visits int, state string) domain.Interaction {
	return domain.Interaction{
		Week:         week,
		SalesMethod:  method,
		CustomerID:   customer,
		NbSold:       nbSold,
		Revenue:      revenue,
		NbSiteVisits: visits,
		State:        state,
	}
}

func sampleCleanedTable() []domain.Interaction {
	return []domain.Interaction{
		cleanedRow(1, domain.MethodEmail, "C1", 10, 100, 20, "Texas"),
		cleanedRow(1, domain.MethodEmail, "C2", 6, 80, 16, "Ohio"),
		cleanedRow(2, domain.MethodEmail, "C3", 4, 60, 12, "Texas"),
		cleanedRow(1, domain.MethodCall, "C4", 8, 40, 10, "Texas"),
		cleanedRow(2, domain.MethodEmailAndCall, "C5", 12, 180, 24, "Ohio"),
	}
}

func TestAggregator_ByMethod(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	aggregates := aggregator.ByMethod(ctx, sampleCleanedTable())

	require.Len(t, aggregates, 3)

	// Stable display order: email, call, email_and_call
	assert.Equal(t, domain.MethodEmail, aggregates[0].Method)
	assert.Equal(t, domain.MethodCall, aggregates[1].Method)
	assert.Equal(t, domain.MethodEmailAndCall, aggregates[2].Method)

	email := aggregates[0]
	assert.Equal(t, 3, email.Count)
	assert.InDelta(t, 240.0, email.TotalRevenue, 1e-9)
	assert.InDelta(t, 80.0, email.MeanRevenue, 1e-9)
	assert.InDelta(t, 20.0/3.0, email.MeanNbSold, 1e-9)
	assert.InDelta(t, 16.0, email.MeanNbSiteVisits, 1e-9)
}

func TestAggregator_ByMethodWeek(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	aggregates := aggregator.ByMethodWeek(ctx, sampleCleanedTable())

	require.Len(t, aggregates, 4)

	assert.Equal(t, domain.MethodEmail, aggregates[0].Method)
	assert.Equal(t, 1, aggregates[0].Week)
	assert.Equal(t, 2, aggregates[0].Count)
	assert.InDelta(t, 180.0, aggregates[0].TotalRevenue, 1e-9)

	assert.Equal(t, domain.MethodEmail, aggregates[1].Method)
	assert.Equal(t, 2, aggregates[1].Week)
	assert.Equal(t, 1, aggregates[1].Count)
}

func TestAggregator_ByMethodState(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	aggregates := aggregator.ByMethodState(ctx, sampleCleanedTable())

	require.Len(t, aggregates, 4)

	// States alphabetical within each method
	assert.Equal(t, "Ohio", aggregates[0].State)
	assert.Equal(t, "Texas", aggregates[1].State)

	texasEmail := aggregates[1]
	assert.Equal(t, domain.MethodEmail, texasEmail.Method)
	assert.Equal(t, 2, texasEmail.Count)
	assert.InDelta(t, 160.0, texasEmail.TotalRevenue, 1e-9)
}

func TestAggregator_SumPropertyNeverDropsOrDoubleCounts(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())
	rows := sampleCleanedTable()

	var ungroupedTotal float64
	for _, r := range rows {
		ungroupedTotal += r.Revenue
	}

	var methodTotal, weekTotal, stateTotal float64
	var methodCount, weekCount, stateCount int
	for _, a := range aggregator.ByMethod(ctx, rows) {
		methodTotal += a.TotalRevenue
		methodCount += a.Count
	}
	for _, a := range aggregator.ByMethodWeek(ctx, rows) {
		weekTotal += a.TotalRevenue
		weekCount += a.Count
	}
	for _, a := range aggregator.ByMethodState(ctx, rows) {
		stateTotal += a.TotalRevenue
		stateCount += a.Count
	}

	assert.InDelta(t, ungroupedTotal, methodTotal, 1e-9)
	assert.InDelta(t, ungroupedTotal, weekTotal, 1e-9)
	assert.InDelta(t, ungroupedTotal, stateTotal, 1e-9)
	assert.Equal(t, len(rows), methodCount)
	assert.Equal(t, len(rows), weekCount)
	assert.Equal(t, len(rows), stateCount)
}

func TestAggregator_EmptyGroupsOmitted(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	rows := []domain.Interaction{
		cleanedRow(1, domain.MethodEmail, "C1", 10, 100, 20, "Texas"),
	}

	aggregates := aggregator.ByMethod(ctx, rows)
	require.Len(t, aggregates, 1)
	assert.Equal(t, domain.MethodEmail, aggregates[0].Method)

	for _, a := range aggregates {
		assert.NotZero(t, a.Count)
	}
}

func TestAggregator_EmptyInput(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	assert.Empty(t, aggregator.ByMethod(ctx, nil))
	assert.Empty(t, aggregator.ByMethodWeek(ctx, nil))
	assert.Empty(t, aggregator.ByMethodState(ctx, nil))
}

func TestAggregator_Deterministic(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())
	rows := sampleCleanedTable()

	first := aggregator.ByMethodState(ctx, rows)
	second := aggregator.ByMethodState(ctx, rows)

	assert.Equal(t, first, second)
}
