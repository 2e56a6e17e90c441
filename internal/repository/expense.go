package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

const expenseColumns = `e.id, e.trip_id, e.payer_id, u.name, e.amount, e.currency_code,
	e.amount_base, e.category, e.payment_method, e.memo, e.paid_at`

const expenseFrom = ` FROM expenses e JOIN users u ON u.id = e.payer_id`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (
			id, trip_id, payer_id, amount, currency_code, amount_base,
			category, payment_method, memo, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.TripID, e.PayerID, e.Amount, e.CurrencyCode, e.AmountBase,
		e.Category, e.PaymentMethod, e.Memo, e.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", mapWriteError(err))
	}
	return nil
}

// Update rewrites the mutable columns. paid_at keeps its original value.
func (r *ExpenseRepository) Update(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET
			payer_id = $2, amount = $3, currency_code = $4, amount_base = $5,
			category = $6, payment_method = $7, memo = $8
		WHERE id = $1`,
		e.ID, e.PayerID, e.Amount, e.CurrencyCode, e.AmountBase,
		e.Category, e.PaymentMethod, e.Memo,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", mapWriteError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// GetByID loads the expense and its shares.
func (r *ExpenseRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*domain.Expense, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+expenseColumns+expenseFrom+` WHERE e.id = $1`, id,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	shares, err := r.listShares(ctx, q,
		`SELECT expense_id, user_id, share_amount FROM expense_shares
		WHERE expense_id = $1 ORDER BY user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	e.Shares = shares
	return e, nil
}

// ListByTrip returns the trip's expenses in paid_at order, each with its
// shares attached.
func (r *ExpenseRepository) ListByTrip(ctx context.Context, q Querier, tripID uuid.UUID) ([]domain.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+expenseColumns+expenseFrom+`
		WHERE e.trip_id = $1
		ORDER BY e.paid_at, e.created_at, e.id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByTrip: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByTrip: scan: %w", err)
		}
		e.Shares = []domain.ExpenseShare{}
		index[e.ID] = len(expenses)
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByTrip: rows: %w", err)
	}

	shares, err := r.listShares(ctx, q,
		`SELECT es.expense_id, es.user_id, es.share_amount
		FROM expense_shares es
		JOIN expenses e ON e.id = es.expense_id
		WHERE e.trip_id = $1
		ORDER BY es.user_id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("ListByTrip: %w", err)
	}
	for _, s := range shares {
		if i, ok := index[s.ExpenseID]; ok {
			expenses[i].Shares = append(expenses[i].Shares, s)
		}
	}
	return expenses, nil
}

// ReplaceShares deletes every share of the expense and inserts shares in
// their place.
func (r *ExpenseRepository) ReplaceShares(ctx context.Context, tx *sql.Tx, expenseID uuid.UUID, shares []domain.ExpenseShare) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_shares WHERE expense_id = $1`, expenseID,
	); err != nil {
		return fmt.Errorf("ReplaceShares: delete: %w", err)
	}

	for _, s := range shares {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, user_id, share_amount)
			VALUES ($1, $2, $3)`,
			expenseID, s.ParticipantID, s.Amount,
		); err != nil {
			return fmt.Errorf("ReplaceShares: insert: %w", mapWriteError(err))
		}
	}
	return nil
}

func (r *ExpenseRepository) DeleteSharesOf(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM expense_shares es
		USING expenses e
		WHERE e.id = es.expense_id AND e.trip_id = $1 AND es.user_id = $2`,
		tripID, id,
	)
	if err != nil {
		return fmt.Errorf("DeleteSharesOf: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) DeletePaidBy(ctx context.Context, tx *sql.Tx, tripID uuid.UUID, id domain.ParticipantID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE trip_id = $1 AND payer_id = $2`,
		tripID, id,
	)
	if err != nil {
		return fmt.Errorf("DeletePaidBy: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) listShares(ctx context.Context, q Querier, query string, arg any) ([]domain.ExpenseShare, error) {
	rows, err := q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listShares: %w", err)
	}
	defer rows.Close()

	shares := []domain.ExpenseShare{}
	for rows.Next() {
		var s domain.ExpenseShare
		if err := rows.Scan(&s.ExpenseID, &s.ParticipantID, &s.Amount); err != nil {
			return nil, fmt.Errorf("listShares: scan: %w", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listShares: rows: %w", err)
	}
	return shares, nil
}

func scanExpense(s scanner) (*domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(
		&e.ID, &e.TripID, &e.PayerID, &e.PayerName,
		&e.Amount, &e.CurrencyCode, &e.AmountBase,
		&e.Category, &e.PaymentMethod, &e.Memo, &e.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
