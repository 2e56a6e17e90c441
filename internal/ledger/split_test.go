package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

func ids(n int) []domain.ParticipantID {
	out := make([]domain.ParticipantID, n)
	for i := range out {
		out[i] = domain.ParticipantID(i + 1)
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		count     int
		wantShare string
	}{
		{name: "even split", amount: "30000", count: 2, wantShare: "15000"},
		{name: "uneven currency amount", amount: "130000", count: 3, wantShare: "43333.33"},
		{name: "rounds half away from zero", amount: "0.05", count: 2, wantShare: "0.03"},
		{name: "negative rounds away from zero", amount: "-0.05", count: 2, wantShare: "-0.03"},
		{name: "single participant takes all", amount: "999.99", count: 1, wantShare: "999.99"},
		{name: "two thirds rounds up", amount: "200", count: 3, wantShare: "66.67"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shares := Split(decimal.RequireFromString(tc.amount), ids(tc.count))

			require.Len(t, shares, tc.count)
			for i, s := range shares {
				assert.Equal(t, domain.ParticipantID(i+1), s.ParticipantID)
				assert.True(t, s.Amount.Equal(decimal.RequireFromString(tc.wantShare)),
					"share %d: got %s, want %s", i, s.Amount, tc.wantShare)
			}
		})
	}
}

func TestSplit_NoParticipants(t *testing.T) {
	shares := Split(decimal.NewFromInt(5000), nil)

	assert.NotNil(t, shares)
	assert.Empty(t, shares)
}

func TestSplit_RemainderIsNotRedistributed(t *testing.T) {
	amount := decimal.NewFromInt(130000)
	shares := Split(amount, ids(3))

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}

	assert.True(t, sum.Equal(decimal.RequireFromString("129999.99")), "sum = %s", sum)
	assert.True(t, amount.Sub(sum).Equal(decimal.RequireFromString("0.01")))
}

func TestSplit_CoverageAndBoundedDrift(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "10", "100", "333.33", "1000.07", "130000", "98765.4321", "-45.5"}
	cent := decimal.RequireFromString("0.01")

	for _, a := range amounts {
		amount := decimal.RequireFromString(a)
		for n := 1; n <= 9; n++ {
			shares := Split(amount, ids(n))
			require.Len(t, shares, n)

			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s.Amount)
			}

			bound := cent.Mul(decimal.NewFromInt(int64(n)))
			assert.True(t, sum.Sub(amount).Abs().LessThan(bound),
				"amount %s over %d: sum %s drifts past %s", amount, n, sum, bound)
		}
	}
}
