package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

type ConfirmTransferInput struct {
	PayerName    string
	ReceiverName string
	RawAmount    string
}

type SettlementService struct {
	snapshots snapshotLoader
	trips     tripRepository
	transfers transferRepository
	metrics   settlementObserver
	db        *sql.DB
}

func NewSettlementService(
	snapshots snapshotLoader,
	trips tripRepository,
	transfers transferRepository,
	metrics settlementObserver,
	db *sql.DB,
) *SettlementService {
	return &SettlementService{
		snapshots: snapshots,
		trips:     trips,
		transfers: transfers,
		metrics:   metrics,
		db:        db,
	}
}

// Compute derives current positions and suggested transfers from one
// consistent snapshot of the trip. Nothing is persisted.
func (s *SettlementService) Compute(ctx context.Context, tripID uuid.UUID) (*ledger.Settlement, error) {
	log := logging.FromContext(ctx)

	snap, err := s.snapshots.Load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("Compute: %w", err)
	}

	settlement := ledger.Settle(*snap)
	if s.metrics != nil {
		s.metrics.ObserveSettlement(len(settlement.Suggestions))
	}

	log.Debug("settlement computed",
		"trip_id", tripID,
		"participants", len(snap.Participants),
		"expenses", len(snap.Expenses),
		"transfers", len(snap.Transfers),
		"suggestions", len(settlement.Suggestions),
	)
	return settlement, nil
}

// ConfirmTransfer appends a completed transfer to the trip's log. A
// malformed amount is recorded as zero rather than rejected.
func (s *SettlementService) ConfirmTransfer(ctx context.Context, tripID uuid.UUID, in ConfirmTransferInput) (*domain.CompletedTransfer, error) {
	log := logging.FromContext(ctx)

	payer := strings.TrimSpace(in.PayerName)
	receiver := strings.TrimSpace(in.ReceiverName)
	if payer == "" || receiver == "" {
		return nil, fmt.Errorf("ConfirmTransfer: payer and receiver are required: %w", domain.ErrInvalidRequest)
	}

	amount, err := ledger.CoerceAmount(in.RawAmount)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedAmount) {
			return nil, fmt.Errorf("ConfirmTransfer: %w", err)
		}
		log.Warn("transfer amount coerced to zero",
			"trip_id", tripID,
			"raw_amount", in.RawAmount,
			"error", err,
		)
	}

	t := &domain.CompletedTransfer{
		ID:           uuid.New(),
		TripID:       tripID,
		PayerName:    payer,
		ReceiverName: receiver,
		Amount:       amount,
		Done:         true,
		DoneAt:       time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ConfirmTransfer: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.transfers.Create(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("ConfirmTransfer: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ConfirmTransfer: commit: %w", err)
	}

	log.Info("transfer confirmed",
		"transfer_id", t.ID,
		"trip_id", tripID,
		"payer", t.PayerName,
		"receiver", t.ReceiverName,
		"amount", t.Amount,
	)
	return t, nil
}

func (s *SettlementService) ListTransfers(ctx context.Context, tripID uuid.UUID) ([]domain.CompletedTransfer, error) {
	if _, err := s.trips.GetByID(ctx, s.db, tripID); err != nil {
		return nil, fmt.Errorf("ListTransfers: %w", err)
	}
	transfers, err := s.transfers.ListByTrip(ctx, s.db, tripID)
	if err != nil {
		return nil, fmt.Errorf("ListTransfers: %w", err)
	}
	return transfers, nil
}
