package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

type Conversion struct {
	Amount     decimal.Decimal
	Currency   string
	Rate       decimal.Decimal
	BaseAmount decimal.Decimal
}

// Normalize converts amount in currency code into the table's base unit.
// An empty code means the amount is already in the base currency. No
// rounding is applied; negative amounts pass through unchanged.
func Normalize(amount decimal.Decimal, code string, table RateTable) (*Conversion, error) {
	code = normalizeCode(code)
	if code == "" {
		code = table.Base()
	}

	rate, ok := table.Rate(code)
	if !ok {
		return nil, fmt.Errorf("Normalize: %w", &domain.UnknownCurrencyError{Code: code})
	}

	return &Conversion{
		Amount:     amount,
		Currency:   code,
		Rate:       rate,
		BaseAmount: amount.Mul(rate),
	}, nil
}
