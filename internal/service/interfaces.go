package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/repository"
)

type tripRepository interface {
	Create(ctx context.Context, tx *sql.Tx, trip *domain.Trip) error
	GetByID(ctx context.Context, q repository.Querier, id uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

type participantRepository interface {
	GetOrCreate(ctx context.Context, tx *sql.Tx, name string) (*domain.Participant, error)
	AddToTrip(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error
	RemoveFromTrip(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error
	ListByTrip(ctx context.Context, q repository.Querier, tripID uuid.UUID) ([]domain.Participant, error)
}

type expenseRepository interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error
	Update(ctx context.Context, tx *sql.Tx, e *domain.Expense) error
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
	GetByID(ctx context.Context, q repository.Querier, id uuid.UUID) (*domain.Expense, error)
	ListByTrip(ctx context.Context, q repository.Querier, tripID uuid.UUID) ([]domain.Expense, error)
	ReplaceShares(ctx context.Context, tx *sql.Tx, expenseID uuid.UUID, shares []domain.ExpenseShare) error
	DeleteSharesOf(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error
	DeletePaidBy(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error
}

type currencyRepository interface {
	List(ctx context.Context, q repository.Querier) ([]domain.CurrencyRate, error)
	Upsert(ctx context.Context, tx *sql.Tx, rate domain.CurrencyRate) error
}

type transferRepository interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.CompletedTransfer) error
	ListByTrip(ctx context.Context, q repository.Querier, tripID uuid.UUID) ([]domain.CompletedTransfer, error)
}

type snapshotLoader interface {
	Load(ctx context.Context, tripID uuid.UUID) (*ledger.Snapshot, error)
}

type settlementObserver interface {
	ObserveSettlement(suggestions int)
}
