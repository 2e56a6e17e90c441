package ledger

import (
	"github.com/josh-kwaku/travelmate/internal/domain"
)

// Snapshot is everything a settlement reads for one trip. Callers load it
// from a single consistent read.
type Snapshot struct {
	Participants []domain.Participant
	Expenses     []domain.Expense
	Transfers    []domain.CompletedTransfer
}

type Settlement struct {
	Positions   []Position
	Suggestions []SuggestedTransfer
}

func Settle(snapshot Snapshot) *Settlement {
	balances := Aggregate(snapshot.Participants, snapshot.Expenses)
	positions := Adjust(balances, snapshot.Transfers)
	return &Settlement{
		Positions:   positions,
		Suggestions: Simplify(positions),
	}
}
