package domain

import "github.com/shopspring/decimal"

// BaseCurrency is the unit every normalized amount is expressed in.
const BaseCurrency = "KRW"

type CurrencyRate struct {
	Code       string
	RateToBase decimal.Decimal
}
