package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

const transferColumns = `id, trip_id, payer_name, receiver_name, amount, is_done, done_at`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, tx *sql.Tx, t *domain.CompletedTransfer) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO settlement_transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.TripID, t.PayerName, t.ReceiverName, t.Amount, t.Done, t.DoneAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", mapWriteError(err))
	}
	return nil
}

func (r *TransferRepository) ListByTrip(ctx context.Context, q Querier, tripID uuid.UUID) ([]domain.CompletedTransfer, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+transferColumns+` FROM settlement_transfers
		WHERE trip_id = $1
		ORDER BY done_at, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByTrip: %w", err)
	}
	defer rows.Close()

	transfers := []domain.CompletedTransfer{}
	for rows.Next() {
		var t domain.CompletedTransfer
		if err := rows.Scan(
			&t.ID, &t.TripID, &t.PayerName, &t.ReceiverName, &t.Amount, &t.Done, &t.DoneAt,
		); err != nil {
			return nil, fmt.Errorf("ListByTrip: scan: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByTrip: rows: %w", err)
	}
	return transfers, nil
}
