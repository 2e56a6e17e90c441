package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/ledger"
)

// SnapshotRepository reads everything a settlement needs for one trip
// inside a single repeatable-read transaction, so a concurrent expense edit
// is seen entirely or not at all.
type SnapshotRepository struct {
	db           *sql.DB
	trips        *TripRepository
	participants *ParticipantRepository
	expenses     *ExpenseRepository
	transfers    *TransferRepository
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db:           db,
		trips:        NewTripRepository(db),
		participants: NewParticipantRepository(db),
		expenses:     NewExpenseRepository(db),
		transfers:    NewTransferRepository(db),
	}
}

func (r *SnapshotRepository) Load(ctx context.Context, tripID uuid.UUID) (*ledger.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("Load: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := r.trips.GetByID(ctx, tx, tripID); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	participants, err := r.participants.ListByTrip(ctx, tx, tripID)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	expenses, err := r.expenses.ListByTrip(ctx, tx, tripID)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	transfers, err := r.transfers.ListByTrip(ctx, tx, tripID)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Load: commit: %w", err)
	}

	return &ledger.Snapshot{
		Participants: participants,
		Expenses:     expenses,
		Transfers:    transfers,
	}, nil
}
