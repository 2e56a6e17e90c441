package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

const shareScale = 2

// Split divides amount evenly across participants, rounding each share to
// two places half away from zero. The rounding remainder stays unassigned,
// so the shares may sum to a few hundredths off amount.
func Split(amount decimal.Decimal, participants []domain.ParticipantID) []domain.ExpenseShare {
	if len(participants) == 0 {
		return []domain.ExpenseShare{}
	}

	share := amount.Div(decimal.NewFromInt(int64(len(participants)))).Round(shareScale)

	shares := make([]domain.ExpenseShare, 0, len(participants))
	for _, id := range participants {
		shares = append(shares, domain.ExpenseShare{
			ParticipantID: id,
			Amount:        share,
		})
	}
	return shares
}
