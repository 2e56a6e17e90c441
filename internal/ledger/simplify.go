package ledger

import (
	"github.com/shopspring/decimal"
)

type SuggestedTransfer struct {
	From   string
	To     string
	Amount int64
}

type party struct {
	name      string
	remaining decimal.Decimal
}

// Simplify greedily pairs debtors with creditors in position order. It is
// not a minimum-transfer solver; the suggested set depends on that order.
// Whatever cannot be matched after either side runs out is dropped.
func Simplify(positions []Position) []SuggestedTransfer {
	var debtors, creditors []party
	for _, p := range positions {
		switch p.Balance.Sign() {
		case 1:
			creditors = append(creditors, party{name: p.Name, remaining: p.Balance})
		case -1:
			debtors = append(debtors, party{name: p.Name, remaining: p.Balance.Neg()})
		}
	}

	transfers := []SuggestedTransfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := decimal.Min(d.remaining, c.remaining).Round(0)
		if amount.Sign() > 0 {
			transfers = append(transfers, SuggestedTransfer{
				From:   d.name,
				To:     c.name,
				Amount: amount.IntPart(),
			})
			d.remaining = d.remaining.Sub(amount)
			c.remaining = c.remaining.Sub(amount)
		} else {
			// sub-unit residue on the smaller side
			switch d.remaining.Cmp(c.remaining) {
			case -1:
				d.remaining = decimal.Zero
			case 1:
				c.remaining = decimal.Zero
			default:
				d.remaining = decimal.Zero
				c.remaining = decimal.Zero
			}
		}

		if d.remaining.Sign() <= 0 {
			i++
		}
		if c.remaining.Sign() <= 0 {
			j++
		}
	}
	return transfers
}
