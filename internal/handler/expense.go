package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/format"
	"github.com/josh-kwaku/travelmate/internal/logging"
	"github.com/josh-kwaku/travelmate/internal/service"
)

type expenseService interface {
	Create(ctx context.Context, tripID uuid.UUID, in service.ExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, id uuid.UUID, in service.ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

type ExpenseHandler struct {
	expenses     expenseService
	baseCurrency string
}

func NewExpenseHandler(expenses expenseService, baseCurrency string) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, baseCurrency: baseCurrency}
}

type expenseRequest struct {
	PayerID       int64            `json:"payer_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      string           `json:"currency"`
	Category      *string          `json:"category"`
	PaymentMethod *string          `json:"payment_method"`
	Memo          *string          `json:"memo"`
	PaidAt        *time.Time       `json:"paid_at"`
}

func (r expenseRequest) Validate() []FieldError {
	var errs []FieldError

	if r.PayerID <= 0 {
		errs = append(errs, FieldError{Field: "payer_id", Message: "required"})
	}
	if r.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	if len(r.Currency) > 3 {
		errs = append(errs, FieldError{Field: "currency", Message: "must be a 3-letter code"})
	}

	return errs
}

func (r expenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		PayerID:       domain.ParticipantID(r.PayerID),
		Amount:        *r.Amount,
		CurrencyCode:  r.Currency,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		Memo:          r.Memo,
		PaidAt:        r.PaidAt,
	}
}

type shareDTO struct {
	ParticipantID int64           `json:"participant_id"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
}

type expenseDTO struct {
	ID                uuid.UUID       `json:"id"`
	TripID            uuid.UUID       `json:"trip_id"`
	PayerID           int64           `json:"payer_id"`
	PayerName         string          `json:"payer_name"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	AmountDisplay     string          `json:"amount_display"`
	AmountBase        decimal.Decimal `json:"amount_base"`
	AmountBaseDisplay string          `json:"amount_base_display"`
	Category          *string         `json:"category"`
	PaymentMethod     *string         `json:"payment_method"`
	Memo              *string         `json:"memo"`
	PaidAt            time.Time       `json:"paid_at"`
	Shares            []shareDTO      `json:"shares"`
}

func toExpenseDTO(e *domain.Expense, baseCurrency string) expenseDTO {
	shares := make([]shareDTO, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = shareDTO{
			ParticipantID: int64(s.ParticipantID),
			Amount:        s.Amount,
			AmountDisplay: format.Money(s.Amount, baseCurrency),
		}
	}

	return expenseDTO{
		ID:                e.ID,
		TripID:            e.TripID,
		PayerID:           int64(e.PayerID),
		PayerName:         e.PayerName,
		Amount:            e.Amount,
		Currency:          e.CurrencyCode,
		AmountDisplay:     format.Money(e.Amount, e.CurrencyCode),
		AmountBase:        e.AmountBase,
		AmountBaseDisplay: format.Money(e.AmountBase, baseCurrency),
		Category:          e.Category,
		PaymentMethod:     e.PaymentMethod,
		Memo:              e.Memo,
		PaidAt:            e.PaidAt,
		Shares:            shares,
	}
}

func decodeExpenseRequest(w http.ResponseWriter, r *http.Request) (*expenseRequest, bool) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return nil, false
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return nil, false
	}
	return &req, true
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	req, ok := decodeExpenseRequest(w, r)
	if !ok {
		return
	}

	e, err := h.expenses.Create(r.Context(), tripID, req.toInput())
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to create expense", "error", err, "trip_id", tripID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toExpenseDTO(e, h.baseCurrency))
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	expenseID, appErr := uuidFromPath(r, "expenseID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	req, ok := decodeExpenseRequest(w, r)
	if !ok {
		return
	}

	e, err := h.expenses.Update(r.Context(), expenseID, req.toInput())
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to update expense", "error", err, "expense_id", expenseID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toExpenseDTO(e, h.baseCurrency))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID, appErr := uuidFromPath(r, "expenseID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.expenses.Delete(r.Context(), expenseID); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondNoContent(w)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expenseID, appErr := uuidFromPath(r, "expenseID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	e, err := h.expenses.Get(r.Context(), expenseID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toExpenseDTO(e, h.baseCurrency))
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	expenses, err := h.expenses.List(r.Context(), tripID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]expenseDTO, len(expenses))
	for i := range expenses {
		dtos[i] = toExpenseDTO(&expenses[i], h.baseCurrency)
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
