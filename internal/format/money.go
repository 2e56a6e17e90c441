package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money renders amount with the currency's symbol and minor-unit precision,
// e.g. "₩15,000" or "$100.00". Codes go-money does not know fall back to
// "<amount> <code>".
func Money(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

func Units(amount int64, code string) string {
	return Money(decimal.NewFromInt(amount), code)
}
