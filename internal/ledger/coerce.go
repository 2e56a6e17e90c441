package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// CoerceAmount parses a transfer amount and truncates it toward zero.
// Unparseable input yields 0 alongside an ErrMalformedAmount so the caller
// can record the zero and log the reason.
func CoerceAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("CoerceAmount: empty amount: %w", domain.ErrMalformedAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("CoerceAmount: %q: %w", raw, domain.ErrMalformedAmount)
	}

	d = d.Truncate(0)
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return 0, fmt.Errorf("CoerceAmount: %q out of range: %w", raw, domain.ErrMalformedAmount)
	}
	return d.IntPart(), nil
}
