package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/fx"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

type CurrencyService struct {
	currencies   currencyRepository
	baseCurrency string
	db           *sql.DB
}

func NewCurrencyService(currencies currencyRepository, baseCurrency string, db *sql.DB) *CurrencyService {
	return &CurrencyService{currencies: currencies, baseCurrency: baseCurrency, db: db}
}

func (s *CurrencyService) Table(ctx context.Context) (fx.RateTable, error) {
	rates, err := s.currencies.List(ctx, s.db)
	if err != nil {
		return fx.RateTable{}, fmt.Errorf("Table: %w", err)
	}
	return fx.NewRateTable(s.baseCurrency, rates), nil
}

func (s *CurrencyService) List(ctx context.Context) ([]domain.CurrencyRate, error) {
	rates, err := s.currencies.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return rates, nil
}

// SetRate changes the rate applied to expenses written from now on.
func (s *CurrencyService) SetRate(ctx context.Context, code string, rate decimal.Decimal) error {
	log := logging.FromContext(ctx)

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || !rate.IsPositive() {
		return fmt.Errorf("SetRate: %w", domain.ErrInvalidRequest)
	}
	if code == s.baseCurrency && !rate.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("SetRate: base currency rate is fixed at 1: %w", domain.ErrInvalidRequest)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SetRate: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.currencies.Upsert(ctx, tx, domain.CurrencyRate{Code: code, RateToBase: rate}); err != nil {
		return fmt.Errorf("SetRate: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SetRate: commit: %w", err)
	}

	log.Info("currency rate set", "currency", code, "rate_to_base", rate.String())
	return nil
}
