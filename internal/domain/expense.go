package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a payment made by one participant on behalf of the trip.
// AmountBase is computed once when the expense is written and is never
// re-derived from the rate table afterwards.
type Expense struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	PayerID       ParticipantID
	PayerName     string
	Amount        decimal.Decimal
	CurrencyCode  string
	AmountBase    decimal.Decimal
	Category      *string
	PaymentMethod *string
	Memo          *string
	PaidAt        time.Time
	Shares        []ExpenseShare
}

type ExpenseShare struct {
	ExpenseID     uuid.UUID
	ParticipantID ParticipantID
	Amount        decimal.Decimal
}
