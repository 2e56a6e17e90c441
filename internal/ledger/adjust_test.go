package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

func balance(id domain.ParticipantID, name, paid, share string) Balance {
	return Balance{
		ParticipantID: id,
		Name:          name,
		TotalPaid:     dec(paid),
		TotalShare:    dec(share),
		Balance:       dec(paid).Sub(dec(share)),
	}
}

func done(from, to string, amount int64) domain.CompletedTransfer {
	return domain.CompletedTransfer{PayerName: from, ReceiverName: to, Amount: amount, Done: true}
}

func TestAdjust(t *testing.T) {
	balances := []Balance{
		balance(1, "A", "30000", "15000"),
		balance(2, "B", "0", "15000"),
	}

	tests := []struct {
		name          string
		transfers     []domain.CompletedTransfer
		wantBalance   []string
		wantFinalPaid []string
	}{
		{
			name:          "no transfers",
			wantBalance:   []string{"15000", "-15000"},
			wantFinalPaid: []string{"30000", "0"},
		},
		{
			name:          "completed transfer moves both parties",
			transfers:     []domain.CompletedTransfer{done("B", "A", 10000)},
			wantBalance:   []string{"5000", "-5000"},
			wantFinalPaid: []string{"20000", "10000"},
		},
		{
			name: "pending transfer is ignored",
			transfers: []domain.CompletedTransfer{
				{PayerName: "B", ReceiverName: "A", Amount: 10000, Done: false},
			},
			wantBalance:   []string{"15000", "-15000"},
			wantFinalPaid: []string{"30000", "0"},
		},
		{
			name:          "transfers accumulate",
			transfers:     []domain.CompletedTransfer{done("B", "A", 4000), done("B", "A", 11000)},
			wantBalance:   []string{"0", "0"},
			wantFinalPaid: []string{"15000", "15000"},
		},
		{
			name:          "unknown names are ignored",
			transfers:     []domain.CompletedTransfer{done("Z", "Y", 500)},
			wantBalance:   []string{"15000", "-15000"},
			wantFinalPaid: []string{"30000", "0"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			positions := Adjust(balances, tc.transfers)

			require.Len(t, positions, len(tc.wantBalance))
			for i, p := range positions {
				assert.True(t, p.Balance.Equal(dec(tc.wantBalance[i])),
					"%s balance: got %s, want %s", p.Name, p.Balance, tc.wantBalance[i])
				assert.True(t, p.FinalPaid.Equal(dec(tc.wantFinalPaid[i])),
					"%s final paid: got %s, want %s", p.Name, p.FinalPaid, tc.wantFinalPaid[i])
				assert.True(t, p.RawBalance.Equal(balances[i].Balance))
			}
		})
	}
}

func TestAdjust_RoundsToWholeUnits(t *testing.T) {
	balances := []Balance{
		balance(1, "A", "100.5", "0"),
		balance(2, "B", "0", "100.5"),
		balance(3, "C", "10.49", "0"),
	}

	positions := Adjust(balances, nil)

	assert.True(t, positions[0].Balance.Equal(dec("101")))
	assert.True(t, positions[1].Balance.Equal(dec("-101")))
	assert.True(t, positions[0].FinalPaid.Equal(dec("101")))
	assert.True(t, positions[1].FinalPaid.IsZero())
	assert.True(t, positions[2].Balance.Equal(dec("10")))
}

func TestAdjust_MatchesByName(t *testing.T) {
	balances := []Balance{
		balance(1, "Min", "200", "0"),
		balance(2, "Min", "0", "100"),
		balance(3, "Jae", "0", "100"),
	}

	positions := Adjust(balances, []domain.CompletedTransfer{done("Jae", "Min", 100)})

	// both "Min" entries receive the transfer
	assert.True(t, positions[0].Balance.Equal(dec("100")))
	assert.True(t, positions[1].Balance.Equal(dec("-200")))
	assert.True(t, positions[2].Balance.Equal(dec("0")))
}
