package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

// Position is a participant's outstanding standing after completed
// transfers. Balance and FinalPaid are whole base-currency units.
type Position struct {
	ParticipantID domain.ParticipantID
	Name          string
	TotalPaid     decimal.Decimal
	TotalShare    decimal.Decimal
	RawBalance    decimal.Decimal
	Balance       decimal.Decimal
	FinalPaid     decimal.Decimal
}

// Adjust folds done transfers into the raw balances. Transfers are matched
// by display name, so participants sharing a name share their transfers.
func Adjust(balances []Balance, transfers []domain.CompletedTransfer) []Position {
	sent := make(map[string]decimal.Decimal)
	received := make(map[string]decimal.Decimal)
	for _, t := range transfers {
		if !t.Done {
			continue
		}
		amount := decimal.NewFromInt(t.Amount)
		sent[t.PayerName] = sent[t.PayerName].Add(amount)
		received[t.ReceiverName] = received[t.ReceiverName].Add(amount)
	}

	positions := make([]Position, 0, len(balances))
	for _, b := range balances {
		adjusted := b.Balance.Add(sent[b.Name]).Sub(received[b.Name])
		positions = append(positions, Position{
			ParticipantID: b.ParticipantID,
			Name:          b.Name,
			TotalPaid:     b.TotalPaid,
			TotalShare:    b.TotalShare,
			RawBalance:    b.Balance,
			Balance:       adjusted.Round(0),
			FinalPaid:     b.TotalShare.Add(adjusted).Round(0),
		})
	}
	return positions
}
