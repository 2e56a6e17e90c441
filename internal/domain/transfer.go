package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompletedTransfer records a peer payment the users confirmed outside the
// app. Parties are identified by display name.
type CompletedTransfer struct {
	ID           uuid.UUID
	TripID       uuid.UUID
	PayerName    string
	ReceiverName string
	Amount       int64
	Done         bool
	DoneAt       time.Time
}
