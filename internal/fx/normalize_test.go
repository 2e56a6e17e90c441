package fx

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

func testTable() RateTable {
	return NewRateTable("KRW", []domain.CurrencyRate{
		{Code: "KRW", RateToBase: decimal.NewFromInt(1)},
		{Code: "USD", RateToBase: decimal.NewFromInt(1300)},
		{Code: "JPY", RateToBase: decimal.RequireFromString("9.25")},
	})
}

func TestNormalize(t *testing.T) {
	table := testTable()

	tests := []struct {
		name         string
		amount       string
		code         string
		wantCurrency string
		wantRate     string
		wantBase     string
		wantErr      error
	}{
		{
			name:         "USD to base",
			amount:       "100",
			code:         "USD",
			wantCurrency: "USD",
			wantRate:     "1300",
			wantBase:     "130000",
		},
		{
			name:         "fractional rate is not rounded",
			amount:       "333",
			code:         "JPY",
			wantCurrency: "JPY",
			wantRate:     "9.25",
			wantBase:     "3080.25",
		},
		{
			name:         "base currency passthrough",
			amount:       "15000.5",
			code:         "KRW",
			wantCurrency: "KRW",
			wantRate:     "1",
			wantBase:     "15000.5",
		},
		{
			name:         "empty code means base currency",
			amount:       "42000",
			code:         "",
			wantCurrency: "KRW",
			wantRate:     "1",
			wantBase:     "42000",
		},
		{
			name:         "code is trimmed and upper-cased",
			amount:       "2",
			code:         " usd ",
			wantCurrency: "USD",
			wantRate:     "1300",
			wantBase:     "2600",
		},
		{
			name:         "negative amount passes through",
			amount:       "-10",
			code:         "USD",
			wantCurrency: "USD",
			wantRate:     "1300",
			wantBase:     "-13000",
		},
		{
			name:    "unknown currency",
			amount:  "50",
			code:    "XYZ",
			wantErr: domain.ErrUnknownCurrency,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := Normalize(decimal.RequireFromString(tc.amount), tc.code, table)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantCurrency, conv.Currency)
			assert.True(t, conv.Rate.Equal(decimal.RequireFromString(tc.wantRate)),
				"rate: got %s, want %s", conv.Rate, tc.wantRate)
			assert.True(t, conv.BaseAmount.Equal(decimal.RequireFromString(tc.wantBase)),
				"base: got %s, want %s", conv.BaseAmount, tc.wantBase)
		})
	}
}

func TestNormalize_UnknownCurrencyNamesCode(t *testing.T) {
	_, err := Normalize(decimal.NewFromInt(50), "xyz", testTable())

	var ucErr *domain.UnknownCurrencyError
	require.True(t, errors.As(err, &ucErr))
	assert.Equal(t, "XYZ", ucErr.Code)
	assert.Contains(t, err.Error(), "XYZ")
}

func TestNormalize_Identity(t *testing.T) {
	empty := NewRateTable("KRW", nil)

	for _, amount := range []string{"0", "1", "0.01", "-250", "123456789.987654321"} {
		x := decimal.RequireFromString(amount)

		conv, err := Normalize(x, "KRW", empty)
		require.NoError(t, err)
		assert.True(t, conv.BaseAmount.Equal(x), "normalize(%s, KRW) = %s", x, conv.BaseAmount)
	}
}

func TestRateTable(t *testing.T) {
	table := NewRateTable("", []domain.CurrencyRate{
		{Code: "usd", RateToBase: decimal.NewFromInt(1300)},
		{Code: "EUR", RateToBase: decimal.NewFromInt(1450)},
	})

	assert.Equal(t, domain.BaseCurrency, table.Base())
	assert.Equal(t, []string{"EUR", "USD"}, table.Codes())

	rate, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(1300)))

	_, ok = table.Rate("GBP")
	assert.False(t, ok)
}
