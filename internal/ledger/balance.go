package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

type Balance struct {
	ParticipantID domain.ParticipantID
	Name          string
	TotalPaid     decimal.Decimal
	TotalShare    decimal.Decimal
	Balance       decimal.Decimal
}

// Aggregate computes paid, owed and net amounts for every trip participant,
// ordered by participant id. Payers and share holders outside participants
// are ignored.
func Aggregate(participants []domain.Participant, expenses []domain.Expense) []Balance {
	ordered := make([]domain.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	index := make(map[domain.ParticipantID]int, len(ordered))
	balances := make([]Balance, 0, len(ordered))
	for _, p := range ordered {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(balances)
		balances = append(balances, Balance{
			ParticipantID: p.ID,
			Name:          p.Name,
			TotalPaid:     decimal.Zero,
			TotalShare:    decimal.Zero,
		})
	}

	for _, e := range expenses {
		if i, ok := index[e.PayerID]; ok {
			balances[i].TotalPaid = balances[i].TotalPaid.Add(e.AmountBase)
		}
		for _, s := range e.Shares {
			if i, ok := index[s.ParticipantID]; ok {
				balances[i].TotalShare = balances[i].TotalShare.Add(s.Amount)
			}
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].TotalPaid.Sub(balances[i].TotalShare)
	}
	return balances
}
