package geography

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func interactionIn(state string, method domain.SalesMethod) domain.Interaction {
	return domain.Interaction{
		Week:        1,
		SalesMethod: method,
		CustomerID:  "C1",
		NbSold:      5,
		Revenue:     50,
		State:       state,
	}
}

func TestDominanceByState(t *testing.T) {
	ctx := context.Background()

	rows := []domain.Interaction{
		interactionIn("Texas", domain.MethodEmail),
		interactionIn("Texas", domain.MethodEmail),
		interactionIn("Texas", domain.MethodEmail),
		interactionIn("Texas", domain.MethodCall),
		interactionIn("Ohio", domain.MethodCall),
		interactionIn("Ohio", domain.MethodEmailAndCall),
	}

	result := DominanceByState(ctx, slog.Default(), rows)
	require.Len(t, result, 2)

	// States come out alphabetical
	assert.Equal(t, "Ohio", result[0].State)
	assert.Equal(t, "Texas", result[1].State)

	texas := result[1]
	assert.Equal(t, "TX", texas.Abbreviation)
	assert.Equal(t, 4, texas.Interactions)
	assert.InDelta(t, 75.0, texas.MethodShare[domain.MethodEmail], 1e-9)
	assert.InDelta(t, 25.0, texas.MethodShare[domain.MethodCall], 1e-9)
	assert.Equal(t, domain.MethodEmail, texas.Dominant)
	assert.InDelta(t, 75.0, texas.Strength, 1e-9)
}

func TestDominanceByState_SharesSumToHundred(t *testing.T) {
	ctx := context.Background()

	rows := []domain.Interaction{
		interactionIn("Iowa", domain.MethodEmail),
		interactionIn("Iowa", domain.MethodCall),
		interactionIn("Iowa", domain.MethodEmailAndCall),
	}

	result := DominanceByState(ctx, slog.Default(), rows)
	require.Len(t, result, 1)

	var total float64
	for _, share := range result[0].MethodShare {
		total += share
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestDominanceByState_EmptyInput(t *testing.T) {
	assert.Empty(t, DominanceByState(context.Background(), slog.Default(), nil))
}

func TestDominanceByState_AbsentMethodHasNoShareEntry(t *testing.T) {
	ctx := context.Background()

	rows := []domain.Interaction{
		interactionIn("Maine", domain.MethodEmail),
	}

	result := DominanceByState(ctx, slog.Default(), rows)
	require.Len(t, result, 1)

	_, hasCall := result[0].MethodShare[domain.MethodCall]
	assert.False(t, hasCall)
	assert.InDelta(t, 100.0, result[0].MethodShare[domain.MethodEmail], 1e-9)
}

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{state: "Texas", want: "TX"},
		{state: "New Hampshire", want: "NH"},
		{state: "West Virginia", want: "WV"},
		{state: "Atlantis", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, Abbreviation(tt.state))
		})
	}
}

func TestSaveToCSV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dominance.csv")

	rows := []domain.Interaction{
		interactionIn("Texas", domain.MethodEmail),
		interactionIn("Texas", domain.MethodCall),
	}

	dominance := DominanceByState(ctx, slog.Default(), rows)
	require.NoError(t, SaveToCSV(dominance, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"State", "StateAbbrev", "Interactions",
		"Share_email", "Share_call", "Share_email_and_call",
		"DominantMethod", "DominanceStrength",
	}, records[0])
	assert.Equal(t, "Texas", records[1][0])
	assert.Equal(t, "TX", records[1][1])
	assert.Equal(t, "50.00", records[1][3])
}

func TestSaveToCSV_Empty(t *testing.T) {
	err := SaveToCSV(nil, filepath.Join(t.TempDir(), "dominance.csv"))
	require.Error(t, err)
}
