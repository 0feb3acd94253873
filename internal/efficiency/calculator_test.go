package efficiency

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func TestNewCalculator(t *testing.T) {
	tests := []struct {
		name    string
		costs   MinuteCosts
		wantErr bool
	}{
		{name: "default costs", costs: DefaultMinuteCosts()},
		{name: "custom costs", costs: MinuteCosts{Email: 1, Call: 20, EmailAndCall: 10}},
		{name: "zero email cost", costs: MinuteCosts{Email: 0, Call: 20, EmailAndCall: 10}, wantErr: true},
		{name: "negative call cost", costs: MinuteCosts{Email: 1, Call: -5, EmailAndCall: 10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewCalculator(slog.Default(), tt.costs)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, calc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, calc)
		})
	}
}

func TestCalculator_Rank(t *testing.T) {
	ctx := context.Background()
	calc, err := NewCalculator(slog.Default(), MinuteCosts{Email: 0.5, Call: 30, EmailAndCall: 15})
	require.NoError(t, err)

	aggregates := []domain.MethodAggregate{
		{Method: domain.MethodEmail, Count: 100, TotalRevenue: 1000},
		{Method: domain.MethodCall, Count: 10, TotalRevenue: 600},
		{Method: domain.MethodEmailAndCall, Count: 20, TotalRevenue: 1500},
	}

	ranking := calc.Rank(ctx, aggregates)
	require.Len(t, ranking, 3)

	// email: 1000 / (0.5*100) = 20, email_and_call: 1500 / (15*20) = 5,
	// call: 600 / (30*10) = 2
	assert.Equal(t, domain.MethodEmail, ranking[0].Method)
	assert.InDelta(t, 20.0, ranking[0].TRMNS, 1e-9)
	assert.Equal(t, 1, ranking[0].Rank)

	assert.Equal(t, domain.MethodEmailAndCall, ranking[1].Method)
	assert.InDelta(t, 5.0, ranking[1].TRMNS, 1e-9)
	assert.Equal(t, 2, ranking[1].Rank)

	assert.Equal(t, domain.MethodCall, ranking[2].Method)
	assert.InDelta(t, 2.0, ranking[2].TRMNS, 1e-9)
	assert.Equal(t, 3, ranking[2].Rank)
}

func TestCalculator_RankSkipsZeroCountGroups(t *testing.T) {
	ctx := context.Background()
	calc, err := NewCalculator(slog.Default(), DefaultMinuteCosts())
	require.NoError(t, err)

	aggregates := []domain.MethodAggregate{
		{Method: domain.MethodEmail, Count: 10, TotalRevenue: 100},
		{Method: domain.MethodCall, Count: 0, TotalRevenue: 0},
	}

	ranking := calc.Rank(ctx, aggregates)
	require.Len(t, ranking, 1)
	assert.Equal(t, domain.MethodEmail, ranking[0].Method)
}

func TestCalculator_RankEmptyInput(t *testing.T) {
	ctx := context.Background()
	calc, err := NewCalculator(slog.Default(), DefaultMinuteCosts())
	require.NoError(t, err)

	assert.Empty(t, calc.Rank(ctx, nil))
	assert.Empty(t, calc.RankByState(ctx, nil))
}

func TestCalculator_RankByState(t *testing.T) {
	ctx := context.Background()
	calc, err := NewCalculator(slog.Default(), MinuteCosts{Email: 1, Call: 10, EmailAndCall: 5})
	require.NoError(t, err)

	aggregates := []domain.MethodStateAggregate{
		{Method: domain.MethodEmail, State: "Texas", Count: 10, TotalRevenue: 50},
		{Method: domain.MethodCall, State: "Texas", Count: 2, TotalRevenue: 100},
		{Method: domain.MethodEmail, State: "Ohio", Count: 5, TotalRevenue: 25},
		{Method: domain.MethodCall, State: "Iowa", Count: 0, TotalRevenue: 0},
	}

	states := calc.RankByState(ctx, aggregates)
	require.Len(t, states, 2)

	// States alphabetical, zero-count Iowa absent entirely
	assert.Equal(t, "Ohio", states[0].State)
	assert.Equal(t, "Texas", states[1].State)

	texas := states[1]
	require.Len(t, texas.Methods, 2)
	// email: 50 / (1*10) = 5, call: 100 / (10*2) = 5 — tie broken by method order
	assert.Equal(t, 1, texas.Methods[0].Rank)
	assert.Equal(t, 2, texas.Methods[1].Rank)
	assert.GreaterOrEqual(t, texas.Methods[0].TRMNS, texas.Methods[1].TRMNS)
}

func TestMinuteCosts_PerInteraction(t *testing.T) {
	costs := MinuteCosts{Email: 0.5, Call: 30, EmailAndCall: 15}

	assert.Equal(t, 0.5, costs.PerInteraction(domain.MethodEmail))
	assert.Equal(t, 30.0, costs.PerInteraction(domain.MethodCall))
	assert.Equal(t, 15.0, costs.PerInteraction(domain.MethodEmailAndCall))
	assert.Equal(t, 0.0, costs.PerInteraction(domain.SalesMethod("fax")))
}
