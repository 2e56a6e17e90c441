package fx

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

// RateTable maps currency codes to a fixed rate into the base currency.
type RateTable struct {
	base  string
	rates map[string]decimal.Decimal
}

func NewRateTable(base string, rates []domain.CurrencyRate) RateTable {
	if base == "" {
		base = domain.BaseCurrency
	}
	t := RateTable{
		base:  normalizeCode(base),
		rates: make(map[string]decimal.Decimal, len(rates)),
	}
	for _, r := range rates {
		t.rates[normalizeCode(r.Code)] = r.RateToBase
	}
	return t
}

func (t RateTable) Base() string {
	if t.base == "" {
		return domain.BaseCurrency
	}
	return t.base
}

// Rate returns the rate for code. The base currency always has rate 1.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	code = normalizeCode(code)
	if code == t.Base() {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.rates[code]
	return r, ok
}

func (t RateTable) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for c := range t.rates {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
