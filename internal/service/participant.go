package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

type ParticipantService struct {
	trips        tripRepository
	participants participantRepository
	expenses     expenseRepository
	db           *sql.DB
}

func NewParticipantService(
	trips tripRepository,
	participants participantRepository,
	expenses expenseRepository,
	db *sql.DB,
) *ParticipantService {
	return &ParticipantService{
		trips:        trips,
		participants: participants,
		expenses:     expenses,
		db:           db,
	}
}

// Add puts the person called name on the trip, reusing an existing identity
// with that name. Adding someone already on the trip is a no-op.
func (s *ParticipantService) Add(ctx context.Context, tripID uuid.UUID, name string) (*domain.Participant, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Add: begin tx: %w", err)
	}
	defer tx.Rollback()

	p, err := s.participants.GetOrCreate(ctx, tx, name)
	if err != nil {
		return nil, fmt.Errorf("Add: %w", err)
	}
	if err := s.participants.AddToTrip(ctx, tx, tripID, p.ID); err != nil {
		return nil, fmt.Errorf("Add: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Add: commit: %w", err)
	}

	log.Info("participant added", "trip_id", tripID, "participant_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *ParticipantService) List(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, s.db, tripID); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	participants, err := s.participants.ListByTrip(ctx, s.db, tripID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return participants, nil
}

// Remove drops the participant from the trip together with their shares
// and every expense they paid on this trip.
func (s *ParticipantService) Remove(ctx context.Context, tripID uuid.UUID, id domain.ParticipantID) error {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Remove: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.expenses.DeleteSharesOf(ctx, tx, tripID, id); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	if err := s.expenses.DeletePaidBy(ctx, tx, tripID, id); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	if err := s.participants.RemoveFromTrip(ctx, tx, tripID, id); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Remove: commit: %w", err)
	}

	log.Info("participant removed", "trip_id", tripID, "participant_id", id)
	return nil
}
