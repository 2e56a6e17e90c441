package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID        uuid.UUID
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}
