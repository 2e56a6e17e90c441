package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

type ParticipantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// GetOrCreate returns the user with this exact name, creating it if needed.
func (r *ParticipantRepository) GetOrCreate(ctx context.Context, tx *sql.Tx, name string) (*domain.Participant, error) {
	var p domain.Participant
	err := tx.QueryRowContext(ctx,
		`INSERT INTO users (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		name,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreate: %w", err)
	}
	return &p, nil
}

// AddToTrip is a no-op when the user is already a member.
func (r *ParticipantRepository) AddToTrip(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO trip_participants (trip_id, user_id) VALUES ($1, $2)
		ON CONFLICT (trip_id, user_id) DO NOTHING`,
		tripID, id,
	)
	if err != nil {
		return fmt.Errorf("AddToTrip: %w", mapWriteError(err))
	}
	return nil
}

func (r *ParticipantRepository) RemoveFromTrip(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM trip_participants WHERE trip_id = $1 AND user_id = $2`,
		tripID, id,
	)
	if err != nil {
		return fmt.Errorf("RemoveFromTrip: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("RemoveFromTrip: %w", err)
	}
	return nil
}

// ListByTrip returns the trip's participants in id order.
func (r *ParticipantRepository) ListByTrip(ctx context.Context, q Querier, tripID uuid.UUID) ([]domain.Participant, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT u.id, u.name
		FROM trip_participants tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.trip_id = $1
		ORDER BY u.id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByTrip: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("ListByTrip: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByTrip: rows: %w", err)
	}
	return participants, nil
}
