package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

type currencyService interface {
	List(ctx context.Context) ([]domain.CurrencyRate, error)
}

type CurrencyHandler struct {
	currencies currencyService
}

func NewCurrencyHandler(currencies currencyService) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

type currencyDTO struct {
	Code       string          `json:"code"`
	RateToBase decimal.Decimal `json:"rate_to_base"`
}

func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.currencies.List(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]currencyDTO, len(rates))
	for i, c := range rates {
		dtos[i] = currencyDTO{Code: c.Code, RateToBase: c.RateToBase}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
