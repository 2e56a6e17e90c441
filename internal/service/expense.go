package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/fx"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

type ExpenseInput struct {
	PayerID       domain.ParticipantID
	Amount        decimal.Decimal
	CurrencyCode  string
	Category      *string
	PaymentMethod *string
	Memo          *string
	PaidAt        *time.Time
}

type ExpenseService struct {
	trips        tripRepository
	participants participantRepository
	expenses     expenseRepository
	currencies   currencyRepository
	baseCurrency string
	db           *sql.DB
}

func NewExpenseService(
	trips tripRepository,
	participants participantRepository,
	expenses expenseRepository,
	currencies currencyRepository,
	baseCurrency string,
	db *sql.DB,
) *ExpenseService {
	return &ExpenseService{
		trips:        trips,
		participants: participants,
		expenses:     expenses,
		currencies:   currencies,
		baseCurrency: baseCurrency,
		db:           db,
	}
}

// Create records an expense on the trip and splits it evenly among every
// current participant. An unknown currency aborts before anything is written.
func (s *ExpenseService) Create(ctx context.Context, tripID uuid.UUID, in ExpenseInput) (*domain.Expense, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.trips.GetByID(ctx, tx, tripID); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	participants, table, err := s.loadSplitInputs(ctx, tx, tripID)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	paidAt := time.Now().UTC()
	if in.PaidAt != nil {
		paidAt = in.PaidAt.UTC()
	}
	e := &domain.Expense{
		ID:     uuid.New(),
		TripID: tripID,
		PaidAt: paidAt,
	}
	if err := prepareExpense(e, in, participants, table); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	if err := s.expenses.Create(ctx, tx, e); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	if err := s.expenses.ReplaceShares(ctx, tx, e.ID, e.Shares); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	log.Info("expense created",
		"expense_id", e.ID,
		"trip_id", tripID,
		"payer_id", e.PayerID,
		"amount", e.Amount.String(),
		"currency", e.CurrencyCode,
		"amount_base", e.AmountBase.String(),
		"shares", len(e.Shares),
	)
	return e, nil
}

// Update re-normalizes the expense at today's rate and regenerates all of
// its shares across the trip's current participants.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, in ExpenseInput) (*domain.Expense, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Update: begin tx: %w", err)
	}
	defer tx.Rollback()

	e, err := s.expenses.GetByID(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	participants, table, err := s.loadSplitInputs(ctx, tx, e.TripID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if err := prepareExpense(e, in, participants, table); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	if err := s.expenses.Update(ctx, tx, e); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if err := s.expenses.ReplaceShares(ctx, tx, e.ID, e.Shares); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Update: commit: %w", err)
	}

	log.Info("expense updated",
		"expense_id", e.ID,
		"trip_id", e.TripID,
		"amount_base", e.AmountBase.String(),
		"shares", len(e.Shares),
	)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.expenses.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Delete: commit: %w", err)
	}

	log.Info("expense deleted", "expense_id", id)
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, s.db, tripID); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	expenses, err := s.expenses.ListByTrip(ctx, s.db, tripID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) loadSplitInputs(ctx context.Context, tx *sql.Tx, tripID uuid.UUID) ([]domain.Participant, fx.RateTable, error) {
	participants, err := s.participants.ListByTrip(ctx, tx, tripID)
	if err != nil {
		return nil, fx.RateTable{}, fmt.Errorf("loadSplitInputs: %w", err)
	}
	rates, err := s.currencies.List(ctx, tx)
	if err != nil {
		return nil, fx.RateTable{}, fmt.Errorf("loadSplitInputs: %w", err)
	}
	return participants, fx.NewRateTable(s.baseCurrency, rates), nil
}

// prepareExpense applies in to e: it checks the payer belongs to the trip,
// snapshots the base amount at the table's rate and splits it among
// participants.
func prepareExpense(e *domain.Expense, in ExpenseInput, participants []domain.Participant, table fx.RateTable) error {
	payer, ok := findParticipant(participants, in.PayerID)
	if !ok {
		return fmt.Errorf("prepareExpense: payer %s: %w", in.PayerID, domain.ErrParticipantNotFound)
	}

	conv, err := fx.Normalize(in.Amount, in.CurrencyCode, table)
	if err != nil {
		return fmt.Errorf("prepareExpense: %w", err)
	}

	ids := make([]domain.ParticipantID, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	e.PayerID = payer.ID
	e.PayerName = payer.Name
	e.Amount = conv.Amount
	e.CurrencyCode = conv.Currency
	e.AmountBase = conv.BaseAmount
	e.Category = in.Category
	e.PaymentMethod = in.PaymentMethod
	e.Memo = in.Memo
	e.Shares = ledger.Split(conv.BaseAmount, ids)
	for i := range e.Shares {
		e.Shares[i].ExpenseID = e.ID
	}
	return nil
}

func findParticipant(participants []domain.Participant, id domain.ParticipantID) (domain.Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Participant{}, false
}
