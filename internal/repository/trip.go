package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

const tripColumns = `id, title, start_date, end_date, created_at`

type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, tx *sql.Tx, trip *domain.Trip) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO trips (id, title, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		trip.ID, trip.Title, trip.StartDate, trip.EndDate, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*domain.Trip, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, id,
	)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

func (r *TripRepository) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips
		ORDER BY start_date NULLS LAST, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		trips = append(trips, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return trips, nil
}

// Delete removes the trip; memberships, expenses, shares and transfers go
// with it through ON DELETE CASCADE.
func (r *TripRepository) Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func scanTrip(s scanner) (*domain.Trip, error) {
	var (
		t          domain.Trip
		start, end sql.NullTime
	)
	if err := s.Scan(&t.ID, &t.Title, &start, &end, &t.CreatedAt); err != nil {
		return nil, err
	}
	if start.Valid {
		t.StartDate = &start.Time
	}
	if end.Valid {
		t.EndDate = &end.Time
	}
	return &t, nil
}
