package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

type CurrencyRepository struct {
	db *sql.DB
}

func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) List(ctx context.Context, q Querier) ([]domain.CurrencyRate, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT currency_code, rate_to_base FROM currencies ORDER BY currency_code`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	rates := []domain.CurrencyRate{}
	for rows.Next() {
		var c domain.CurrencyRate
		if err := rows.Scan(&c.Code, &c.RateToBase); err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		rates = append(rates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return rates, nil
}

// Upsert changes the rate used by future writes. Existing expenses keep the
// base amount computed when they were written.
func (r *CurrencyRepository) Upsert(ctx context.Context, tx *sql.Tx, rate domain.CurrencyRate) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO currencies (currency_code, rate_to_base, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (currency_code) DO UPDATE
		SET rate_to_base = EXCLUDED.rate_to_base, updated_at = now()`,
		rate.Code, rate.RateToBase,
	)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
