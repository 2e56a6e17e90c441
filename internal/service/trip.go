package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

type CreateTripInput struct {
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
}

type TripService struct {
	trips tripRepository
	db    *sql.DB
}

func NewTripService(trips tripRepository, db *sql.DB) *TripService {
	return &TripService{trips: trips, db: db}
}

func (s *TripService) Create(ctx context.Context, in CreateTripInput) (*domain.Trip, error) {
	log := logging.FromContext(ctx)

	trip := &domain.Trip{
		ID:        uuid.New(),
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.trips.Create(ctx, tx, trip); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	log.Info("trip created", "trip_id", trip.ID, "title", trip.Title)
	return trip, nil
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return trip, nil
}

func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return trips, nil
}

func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.trips.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Delete: commit: %w", err)
	}

	log.Info("trip deleted", "trip_id", id)
	return nil
}
